package fragment

import (
	"fmt"
	"strconv"
	"strings"
)

// Generator names for the EnergyPlus co-simulation scenario.
const (
	QueueInitialization   = "queue-initialization"
	InputImport           = "input-import"
	InputLoader           = "input-loader"
	ExchangeHandler       = "exchange-handler"
	PlainImport           = "plain-import"
	CallbackRegistration  = "callback-registration"
	StorageInitialization = "storage-initialization"
)

// defaultQueueCapacity is the channel buffer used when a queue sets none.
const defaultQueueCapacity = 16

// Binding ties a scenario configuration key to a marker and a generator.
type Binding struct {
	Key       string
	Marker    string
	Generator string
}

// EnergyPlusBindings returns the configuration keys understood by the
// EnergyPlus scenario, in template order.
func EnergyPlusBindings() []Binding {
	return []Binding{
		{Key: "queues", Marker: "initQueue", Generator: QueueInitialization},
		{Key: "input_imports", Marker: "importInitInput", Generator: InputImport},
		{Key: "input_loaders", Marker: "inputLoad", Generator: InputLoader},
		{Key: "exchange_handlers", Marker: "ExchangeLoad", Generator: ExchangeHandler},
		{Key: "imports", Marker: "import", Generator: PlainImport},
		{Key: "callbacks", Marker: "call_back", Generator: CallbackRegistration},
		{Key: "storage_init", Marker: "initStorage", Generator: StorageInitialization},
	}
}

// EnergyPlusGenerators returns the seven scenario generators.
func EnergyPlusGenerators() []Generator {
	return []Generator{
		GeneratorFunc{ID: QueueInitialization, Fn: generateQueueInit},
		GeneratorFunc{ID: InputImport, Fn: generateInputImports},
		GeneratorFunc{ID: InputLoader, Fn: generateInputLoaders},
		GeneratorFunc{ID: ExchangeHandler, Fn: generateExchangeHandlers},
		GeneratorFunc{ID: PlainImport, Fn: generatePlainImports},
		GeneratorFunc{ID: CallbackRegistration, Fn: generateCallbacks},
		GeneratorFunc{ID: StorageInitialization, Fn: generateStorageInit},
	}
}

// QueueParams configures one actuator queue.
type QueueParams struct {
	Name     string `yaml:"name" json:"name"`
	Capacity int    `yaml:"capacity,omitempty" json:"capacity,omitempty"`
}

// InputImportParams registers an input instance at construction time.
type InputImportParams struct {
	Module       string `yaml:"module" json:"module"`
	ClassName    string `yaml:"class_name" json:"class_name"`
	InstanceName string `yaml:"instance_name,omitempty" json:"instance_name,omitempty"`
}

// InputLoaderParams adds a lazy loader method for an input.
type InputLoaderParams struct {
	Module     string `yaml:"module" json:"module"`
	ClassName  string `yaml:"class_name" json:"class_name"`
	MethodName string `yaml:"method_name,omitempty" json:"method_name,omitempty"`
}

// ExchangeHandlerParams adds a simulator method pushing queued actuator
// values into the running simulation.
type ExchangeHandlerParams struct {
	Name          string `yaml:"name" json:"name"`
	ComponentType string `yaml:"component_type" json:"component_type"`
	ControlType   string `yaml:"control_type" json:"control_type"`
}

// CallbackParams registers a simulator method as a runtime callback.
type CallbackParams struct {
	Type          string `yaml:"type" json:"type"`
	HandlerMethod string `yaml:"handler_method" json:"handler_method"`
}

// StorageParams configures result storage.
type StorageParams struct {
	MySQL *MySQLParams `yaml:"mysql_config,omitempty" json:"mysql_config,omitempty"`
}

// MySQLParams holds MySQL connection settings. Empty fields take defaults.
type MySQLParams struct {
	Host     string `yaml:"host,omitempty" json:"host,omitempty"`
	User     string `yaml:"user,omitempty" json:"user,omitempty"`
	Password string `yaml:"password,omitempty" json:"password,omitempty"`
	Database string `yaml:"database,omitempty" json:"database,omitempty"`
}

func generateQueueInit(params Params) (string, error) {
	var queues []QueueParams
	if err := params.Decode(&queues); err != nil {
		return "", fmt.Errorf("decode queues: %w", err)
	}

	lines := make([]string, 0, len(queues))
	for i, q := range queues {
		if q.Name == "" {
			return "", fmt.Errorf("queue %d: name is required", i)
		}
		capacity := q.Capacity
		if capacity <= 0 {
			capacity = defaultQueueCapacity
		}
		lines = append(lines, fmt.Sprintf("\tc.queues[%s] = make(chan []Actuator, %d)", strconv.Quote(q.Name), capacity))
	}
	return strings.Join(lines, "\n"), nil
}

func generateInputImports(params Params) (string, error) {
	var imports []InputImportParams
	if err := params.Decode(&imports); err != nil {
		return "", fmt.Errorf("decode input imports: %w", err)
	}

	lines := make([]string, 0, len(imports))
	for i, imp := range imports {
		if imp.Module == "" || imp.ClassName == "" {
			return "", fmt.Errorf("input import %d: module and class_name are required", i)
		}
		instance := imp.InstanceName
		if instance == "" {
			instance = strings.ToLower(imp.ClassName)
		}
		lines = append(lines, fmt.Sprintf("\tc.instances[%s] = %s.New%s()",
			strconv.Quote(instance), imp.Module, goName(imp.ClassName, true)))
	}
	return strings.Join(lines, "\n"), nil
}

func generateInputLoaders(params Params) (string, error) {
	var loaders []InputLoaderParams
	if err := params.Decode(&loaders); err != nil {
		return "", fmt.Errorf("decode input loaders: %w", err)
	}

	blocks := make([]string, 0, len(loaders))
	for i, l := range loaders {
		if l.Module == "" || l.ClassName == "" {
			return "", fmt.Errorf("input loader %d: module and class_name are required", i)
		}
		class := goName(l.ClassName, true)
		method := "get" + class + "Instance"
		if l.MethodName != "" {
			method = goName(l.MethodName, false)
		}
		blocks = append(blocks, strings.Join([]string{
			fmt.Sprintf("func (c *InputCommunicate) %s() {", method),
			fmt.Sprintf("\tinstance := %s.New%s()", l.Module, class),
			fmt.Sprintf("\tc.instances[%s] = instance", strconv.Quote(strings.ToLower(l.ClassName))),
			"}",
		}, "\n"))
	}
	return strings.Join(blocks, "\n\n"), nil
}

func generateExchangeHandlers(params Params) (string, error) {
	var handlers []ExchangeHandlerParams
	if err := params.Decode(&handlers); err != nil {
		return "", fmt.Errorf("decode exchange handlers: %w", err)
	}

	blocks := make([]string, 0, len(handlers))
	for i, h := range handlers {
		if h.Name == "" {
			return "", fmt.Errorf("exchange handler %d: name is required", i)
		}
		method := goName(h.Name, false)
		blocks = append(blocks, strings.Join([]string{
			fmt.Sprintf("// %s processes %s data.", method, h.Name),
			fmt.Sprintf("func (s *EnergyPlusSimulator) %s(state api.State) {", method),
			fmt.Sprintf("\titem := <-s.queues[%s]", strconv.Quote(h.Name)),
			"\tfor _, d := range item {",
			fmt.Sprintf("\t\ts.setActuatorValue(state, %s, %s, d.ActuatorKey, d.Value)",
				strconv.Quote(h.ComponentType), strconv.Quote(h.ControlType)),
			"\t}",
			"}",
		}, "\n"))
	}
	return strings.Join(blocks, "\n\n"), nil
}

func generatePlainImports(params Params) (string, error) {
	var statements []string
	if err := params.Decode(&statements); err != nil {
		return "", fmt.Errorf("decode imports: %w", err)
	}

	lines := make([]string, 0, len(statements))
	for _, stmt := range statements {
		lines = append(lines, "\t"+stmt)
	}
	return strings.Join(lines, "\n"), nil
}

func generateCallbacks(params Params) (string, error) {
	var callbacks []CallbackParams
	if err := params.Decode(&callbacks); err != nil {
		return "", fmt.Errorf("decode callbacks: %w", err)
	}

	lines := make([]string, 0, len(callbacks))
	for i, cb := range callbacks {
		if cb.Type == "" || cb.HandlerMethod == "" {
			return "", fmt.Errorf("callback %d: type and handler_method are required", i)
		}
		lines = append(lines, fmt.Sprintf("\tapi.Runtime.Callback%s(state, c.simulator.%s)",
			goName(cb.Type, true), goName(cb.HandlerMethod, false)))
	}
	return strings.Join(lines, "\n"), nil
}

func generateStorageInit(params Params) (string, error) {
	var storage StorageParams
	if err := params.Decode(&storage); err != nil {
		return "", fmt.Errorf("decode storage: %w", err)
	}
	if storage.MySQL == nil {
		return "", nil
	}

	m := *storage.MySQL
	return strings.Join([]string{
		"func (d *DataStorage) initMySQLStorage() {",
		"\thost := " + strconv.Quote(orDefault(m.Host, "localhost")),
		"\tuser := " + strconv.Quote(orDefault(m.User, "root")),
		"\tpassword := " + strconv.Quote(m.Password),
		"\tdatabase := " + strconv.Quote(orDefault(m.Database, "energyplus")),
		"\td.dsn = user + \":\" + password + \"@tcp(\" + host + \")/\" + database",
		"}",
	}, "\n"), nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

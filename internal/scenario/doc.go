// Package scenario loads generation scenarios.
//
// A scenario names a template, an optional output path and the fragment
// bound to each marker. Scenarios are written in YAML (or JSON) or in CUE:
//
//	template: energyplus.go.tmpl
//	output: generated_energyplus.go
//	format: true
//	fragments:
//	  banner:
//	    text: "// Code generated by splice. DO NOT EDIT."
//	  initQueue:
//	    generator: queue-initialization
//	    params:
//	      - name: weatherData
//
// An optional energyplus section uses the reference integration's keys
// (queues, input_imports, ...) and expands them through
// fragment.EnergyPlusBindings. Explicit fragments win over expanded ones.
//
// Relative template and output paths are resolved against the directory of
// the scenario file.
package scenario

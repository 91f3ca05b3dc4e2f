// Package study implements the trigger-efficiency plot pipeline.
//
// # Reading Guide
//
// Start with these files:
//   - wrapper.go: Wrapper, the named histogram/graph plus display attributes
//   - pipeline.go: the lazily evaluated stages (rebin → efficiency →
//     normalisation → y axis → legend → colours → style)
//   - grouping.go: sorting and partitioning wrappers into canvases
//
// # Architecture
//
// The study package holds the data model and the pure transformations;
// I/O and drawing live in sub-packages:
//   - study/hist/: histogram, graph, rebinning and efficiency arithmetic
//   - study/rootio/: discovering and loading ROOT files, writing groups
//   - study/render/: canvases, decorators and the bounded render runner
//   - study/gallery/: the static web gallery over the output tree
//   - study/selection/: histogram booking and event selection of the analyzer
//   - study/trace/: decision trace recording
//
// Every stage is an iter.Seq[*Wrapper] filter. Nothing is evaluated until
// the final sequence is collected by Pipeline.Run.
package study

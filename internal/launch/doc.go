// Package launch merges a cgroup derived heap limit into the arguments of a
// managed runtime and hands the result to the runtime binary.
//
// Merger.Merge is pure apart from the injected limit lookup: it takes
// snapshots of the environment and argv and returns the arguments to launch
// with. A memory-size flag already present in argv or in the runtime option
// variable always wins, which makes Merge idempotent over its own output.
package launch

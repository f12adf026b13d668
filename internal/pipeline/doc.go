// Package pipeline runs a linking batch: it discovers media files under a
// scan root, resolves each to its canonical place in the target library,
// and hands the pair to the linker on a bounded worker pool.
//
// A batch has up to three phases, run in order: videos from the source
// tree, subtitles from the source tree, and subtitles already sitting in
// the target tree. Files inside one phase are processed concurrently;
// the linker's claim registry keeps two sources from racing for one
// target.
package pipeline

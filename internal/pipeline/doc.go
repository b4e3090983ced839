// Package pipeline provides a framework for running text processing
// steps over corpus documents.
//
// Each document travels through a sequence of steps: wikitext parsing
// with a per-document timeout, and cleanup of leftover markup. Each
// stage is implemented as a Step that receives the current document and
// can modify it.
//
// Design decision: We use a pipeline pattern instead of direct function
// calls because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context for long-running batches
//
// The pipeline supports both single documents and batch processing with
// concurrency control using errgroup.
package pipeline

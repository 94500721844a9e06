/*
Package workers sizes and runs the bounded fan-out used by the picker pipeline.

Each batch stage (cache copy, compression, metadata extraction) launches one
task per item and waits for all of them. Count decides how many tasks may run
at once, respecting container CPU limits through GOMAXPROCS:

	limit := workers.ForIO(16) // 2 per CPU, at most 16
	workers.Each(len(items), limit, func(i int) {
	    results[i] = process(items[i])
	})

Each gives join-all semantics: it returns only after every task finished, and
tasks write into their own index so ordering is preserved without locks.

The PICKER_WORKERS environment variable overrides the computed count (still
capped by the limit argument).
*/
package workers

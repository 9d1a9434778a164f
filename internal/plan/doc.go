// Package plan runs ordered batches of process, shell, lock and write steps
// loaded from a YAML file. Each step passes when its boolean outcome matches
// what the plan expects, so scenarios that must fail can be replayed too.
package plan

// Package inventory loads the declarative node inventory that drives config
// generation.
//
// An [Inventory] holds the cluster-wide facts ([ClusterSpec]) and two node
// groups: core nodes, whose declared role is honored, and edge nodes, which
// always render as workers. Every node carries an explicit [Class] derived
// once at load time, so later stages never infer anything from hostnames.
//
// [Load] aborts with a [LoadError] or [ValidationError] before any side
// effect happens; callers can rely on a returned inventory being complete.
package inventory

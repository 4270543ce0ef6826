//go:build !debug && !race

package invariant

const failFast = false

package sfa

// unionFind is a quick-union structure with full path compression over the
// sites 0..n-1.
type unionFind struct {
	parent []int
	count  int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent, count: n}
}

// find returns the root of the component containing p.
func (u *unionFind) find(p int) int {
	root := p
	for root != u.parent[root] {
		root = u.parent[root]
	}
	for p != root {
		next := u.parent[p]
		u.parent[p] = root
		p = next
	}
	return root
}

func (u *unionFind) union(p, q int) {
	rootP, rootQ := u.find(p), u.find(q)
	if rootP == rootQ {
		return
	}
	u.parent[rootP] = rootQ
	u.count--
}

// components returns the number of components.
func (u *unionFind) components() int {
	return u.count
}

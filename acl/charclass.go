package acl

var basechar [256]bool

func init() {
	for c := '!'; c <= '~'; c++ {
		basechar[c] = true
	}
	basechar['+'] = false
	basechar['.'] = false
	basechar['@'] = false
}

func isBasechar(c byte) bool { return basechar[c] }

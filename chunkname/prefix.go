package chunkname

// PrefixNamer names shared code after the longest common prefix of the
// chunks that load it. A module loaded by every entry goes to CommonName.
type PrefixNamer struct {
	CommonName string
}

// Policy returns PolicyPrefix.
func (PrefixNamer) Policy() Policy { return PolicyPrefix }

// Name puts all of req.Chunks in one group named by PrefixName.
func (n PrefixNamer) Name(req Request) Decision {
	names := Names(req.Chunks)
	name, ok := PrefixName(names, req.TotalEntries, n.CommonName)
	if !ok {
		return Decision{}
	}
	return Decision{name: names}
}

// PrefixName returns the group name for names, or false when nothing should
// be extracted. Fewer than two names never extract, even in a single entry
// build.
func PrefixName(names []string, totalEntries int, commonName string) (string, bool) {
	if len(names) < 2 {
		return "", false
	}
	if len(names) == totalEntries {
		if commonName == "" {
			commonName = DefaultCommonName
		}
		return Sanitize(commonName), true
	}
	prefix := CommonPrefix(names)
	if prefix == "" {
		return "", false
	}
	return Sanitize(prefix), true
}

// CommonPrefix compares the names rune by rune and stops at the first
// position where two neighbours disagree or the shortest name ends.
func CommonPrefix(names []string) string {
	if len(names) == 0 {
		return ""
	}
	runes := make([][]rune, len(names))
	shortest := -1
	for i, n := range names {
		runes[i] = []rune(n)
		if shortest < 0 || len(runes[i]) < shortest {
			shortest = len(runes[i])
		}
	}
	for j := 0; j < shortest; j++ {
		for i := 1; i < len(runes); i++ {
			if runes[i][j] != runes[i-1][j] {
				return string(runes[0][:j])
			}
		}
	}
	return string(runes[0][:shortest])
}

package chunkname

import "strings"

// ModuleNamer gives every module its own shared output, named after the cache
// group, the chunks sharing it and the module's base name.
type ModuleNamer struct {
	CacheGroup string
}

// Policy returns PolicyModule.
func (ModuleNamer) Policy() Policy { return PolicyModule }

// Name groups req.Chunks under ModuleName for req.Module.
func (n ModuleNamer) Name(req Request) Decision {
	names := Names(req.Chunks)
	name, ok := ModuleName(n.CacheGroup, names, req.Module)
	if !ok {
		return Decision{}
	}
	return Decision{name: names}
}

// ModuleName builds "<cacheGroup>-<a~b~c>-<basename>". Single chunk modules
// are not extracted.
func ModuleName(cacheGroup string, names []string, module string) (string, bool) {
	if len(names) < 2 {
		return "", false
	}
	if cacheGroup == "" {
		cacheGroup = DefaultCacheGroup
	}
	parts := []string{cacheGroup, strings.Join(names, "~")}
	if base := moduleBase(module); base != "" {
		parts = append(parts, base)
	}
	return Sanitize(strings.Join(parts, "-")), true
}

// moduleBase returns the last "/" separated segment of a module identifier.
func moduleBase(module string) string {
	if i := strings.LastIndex(module, "/"); i >= 0 {
		return module[i+1:]
	}
	return module
}

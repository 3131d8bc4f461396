package useclient

import (
	"github.com/nullstack-dev/useclient-transform/internal/chunkname"
)

// Plugin is the minimal bundler-facing surface (§6's "plugin surface
// (exposed)") built on top of Transform and a per-instance Registry. It is
// not itself a bundler plugin type — it exposes the three operations a real
// integration's transform/resolveId/load hooks would each delegate to.
type Plugin struct {
	Registry *chunkname.Registry
}

func NewPlugin() *Plugin {
	return &Plugin{Registry: chunkname.NewRegistry()}
}

// StartBuild clears the registry; call once per build, before any Transform.
func (p *Plugin) StartBuild() {
	p.Registry.Clear()
}

// TransformHook applies the id filter, runs Transform, and stores every
// emitted chunk's code in the registry under its InlineModuleId, so a later
// LoadHook call can serve it.
func (p *Plugin) TransformHook(host Host, opts Options, source string) (string, []Chunk, error) {
	if !opts.Filter.Match(opts.AbsPath) {
		return source, nil, nil
	}
	rewritten, chunks, err := Transform(host, opts, source)
	for _, c := range chunks {
		p.Registry.Set(c.Id, c.Code)
	}
	return rewritten, chunks, err
}

// ResolveHook implements §6's resolveId: if id is itself an InlineModuleId
// it is returned unchanged (the load hook owns resolving it further); if the
// importer is an InlineModuleId, resolution of a relative/absolute id from
// it is delegated to host.ResolveExternal rooted at the inline module's
// synthetic path; otherwise ResolveHook declines (ok is false) and the
// host's default resolution applies.
func (p *Plugin) ResolveHook(host Host, id string, importer string) (string, bool) {
	if _, ok := IsInlineModuleId(id); ok {
		return id, true
	}
	if syntheticPath, ok := IsInlineModuleId(importer); ok {
		return host.ResolveExternal(id, syntheticPath)
	}
	return "", false
}

// LoadHook implements §6's load: if id carries the InlineModuleId prefix,
// return the registry's stored text; otherwise decline.
func (p *Plugin) LoadHook(id string) (code string, moduleType string, ok bool) {
	if _, isInline := IsInlineModuleId(id); !isInline {
		return "", "", false
	}
	text, found := p.Registry.Get(id)
	if !found {
		return "", "", false
	}
	return text, "tsx", true
}

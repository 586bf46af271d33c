// Package factory turns `type` + `conf` blocks of the configuration file into
// concrete implementations.
//
// Record sources and report sinks each keep their own registry. Builtin
// implementations register themselves from an init function in the infra
// packages, so importing those packages is enough to make a type available:
//
//	sources := factory.NewRegistry[source.Source]()
//	_ = sources.Register("file", func(conf map[string]any) (source.Source, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return NewFileSource(c.Path), nil
//	})
//	src, err := sources.Create(factory.ModuleConfig{Type: "file", Conf: map[string]any{"path": "tanken.txt"}})
package factory

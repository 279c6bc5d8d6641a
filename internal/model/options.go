package model

// Options configures naming on the generated builder.
type Options struct {
	// BuilderSuffix is appended to the type name ("Builder").
	BuilderSuffix string
	// ConstructorPrefix is prepended to the builder name ("New").
	ConstructorPrefix string
	// BuildMethod names the assembly method ("Build").
	BuildMethod string
	// Reserved lists extra method names accessors must not take.
	Reserved []string
}

func defaultOptions() Options {
	return Options{
		BuilderSuffix:     "Builder",
		ConstructorPrefix: "New",
		BuildMethod:       "Build",
	}
}

func (o Options) withDefaults() Options {
	def := defaultOptions()
	if o.BuilderSuffix == "" {
		o.BuilderSuffix = def.BuilderSuffix
	}
	if o.ConstructorPrefix == "" {
		o.ConstructorPrefix = def.ConstructorPrefix
	}
	if o.BuildMethod == "" {
		o.BuildMethod = def.BuildMethod
	}
	return o
}

func (o Options) reserved() []string {
	return append([]string{o.BuildMethod}, o.Reserved...)
}

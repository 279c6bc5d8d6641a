package sample

// Sample is loaded through go/packages in tests.
type Sample struct {
	Name  string
	Tags  []string `builder:"each=tag"`
	Owner *string
}

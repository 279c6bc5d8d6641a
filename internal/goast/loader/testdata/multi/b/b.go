package b

type B struct {
	Name  string
	Notes []string `builder:"each=note"`
}

package command

type Command struct {
	Executable string
	Args       []string `builder:"each=arg"`
	Env        *string
}

type Broken struct {
	Name string `builder:"each=name"`
}

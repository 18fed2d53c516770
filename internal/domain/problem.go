package domain

// Problem is a catalog entry of a problem set
type Problem struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Level int    `json:"level" yaml:"level"`
}

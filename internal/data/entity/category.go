package entity

// Category and Genre share one shape: a name and a unique slug.
type Category struct {
	BaseSimple
	Name string `db:"name"`
	Slug string `db:"slug"`
}

type Genre struct {
	BaseSimple
	Name string `db:"name"`
	Slug string `db:"slug"`
}

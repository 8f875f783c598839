package domain

import "time"

// Parameters are the runtime parameters of one annotation run.
type Parameters map[string]string

// Get returns the first non-empty value among the given keys.
// Aliases are checked in order, so Get("pattern", "regex") prefers "pattern".
func (p Parameters) Get(keys ...string) string {
	for _, k := range keys {
		if v := p[k]; v != "" {
			return v
		}
	}
	return ""
}

// Clone returns a copy of the parameters.
func (p Parameters) Clone() Parameters {
	if p == nil {
		return nil
	}
	dst := make(Parameters, len(p))
	for k, v := range p {
		dst[k] = v
	}
	return dst
}

// View is the output collection of one annotation run.
// The caller owns the view for as long as it holds the container.
type View struct {
	// ID is the unique identifier for the view.
	ID string `json:"id"`

	// App identifies the application that produced the view.
	App string `json:"app"`

	// Timestamp is when the view was created.
	Timestamp time.Time `json:"timestamp"`

	// Parameters are the runtime parameters used for the run.
	Parameters Parameters `json:"parameters,omitempty"`

	// Annotations are the dates found, in scan order.
	Annotations []DateAnnotation `json:"annotations"`

	// Raw is the encoded form of a view read from an existing container.
	// A view with Raw set is written back exactly as read.
	Raw []byte `json:"-"`
}

// Container holds the documents to annotate and the views produced so far.
type Container struct {
	Documents []Document
	Views     []*View
}

// TextDocuments returns the text documents in container order.
func (c *Container) TextDocuments() []*Document {
	var docs []*Document
	for i := range c.Documents {
		if c.Documents[i].IsText() {
			docs = append(docs, &c.Documents[i])
		}
	}
	return docs
}

// Document returns the document with the given ID.
func (c *Container) Document(id string) (*Document, bool) {
	for i := range c.Documents {
		if c.Documents[i].ID == id {
			return &c.Documents[i], true
		}
	}
	return nil, false
}

// AddView appends a view to the container.
func (c *Container) AddView(v *View) {
	c.Views = append(c.Views, v)
}

// View returns the view with the given ID.
func (c *Container) View(id string) (*View, bool) {
	for _, v := range c.Views {
		if v.ID == id {
			return v, true
		}
	}
	return nil, false
}

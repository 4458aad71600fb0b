package model

// SimplifiedCapture is the ordered list of HTML responses recorded while
// visiting one page. It is immutable after construction.
type SimplifiedCapture struct {
	URL   string         `json:"url" yaml:"url"`
	HTMLs []HTMLExchange `json:"htmls" yaml:"htmls"`
}

// HTMLExchange is a single HTML response body and its position in the session.
type HTMLExchange struct {
	URL     string `json:"url" yaml:"url"`
	Content string `json:"-" yaml:"-"`
	Index   int    `json:"index" yaml:"index"`
}

// PageResult is returned to the host after each page evaluation.
type PageResult struct {
	URL       string            `json:"url" yaml:"url"`
	Capture   SimplifiedCapture `json:"analyzed_data" yaml:"analyzed_data"`
	Knowledge *KnowledgeRecord  `json:"knowledge_data" yaml:"knowledge_data"`
}

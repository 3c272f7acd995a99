package wikihtml

import "strings"

// NamespaceClass groups MediaWiki namespaces by whether their pages carry
// article content.
type NamespaceClass int

// NamespaceClass values. The zero value is NamespaceContent.
const (
	NamespaceContent NamespaceClass = iota
	NamespaceMeta
	NamespaceFile
)

// String returns the lowercase name of the class.
func (c NamespaceClass) String() string {
	switch c {
	case NamespaceMeta:
		return "meta"
	case NamespaceFile:
		return "file"
	default:
		return "content"
	}
}

// ParseNamespaceClass parses a class name as returned by String.
func ParseNamespaceClass(s string) (NamespaceClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "content":
		return NamespaceContent, nil
	case "meta":
		return NamespaceMeta, nil
	case "file":
		return NamespaceFile, nil
	}
	return NamespaceContent, Errorf(EINVALID, "unknown namespace class %q", s)
}

// MediaWiki namespace codes with a fixed meaning.
const (
	NSArticle             = 0
	NSTalk                = 1
	NSUser                = 2
	NSUserTalk            = 3
	NSFile                = 6
	NSMediaWiki           = 8
	NSTemplate            = 10
	NSCategory            = 14
	NSCategoryTalk        = 15
	NSUserBlogComment     = 501
	NSBlog                = 502
	NSMessageWall         = 1200
	NSThread              = 1201
	NSMessageWallGreeting = 1202
	NSBoard               = 2000
)

// excludedNamespaces lists every namespace that is not content.
// Codes missing from this table are content.
var excludedNamespaces = map[int]NamespaceClass{
	NSTalk:                NamespaceMeta,
	NSUser:                NamespaceMeta,
	NSUserTalk:            NamespaceMeta,
	NSMediaWiki:           NamespaceMeta,
	NSTemplate:            NamespaceMeta,
	NSCategory:            NamespaceMeta,
	NSCategoryTalk:        NamespaceMeta,
	NSUserBlogComment:     NamespaceMeta,
	NSBlog:                NamespaceMeta,
	NSMessageWall:         NamespaceMeta,
	NSThread:              NamespaceMeta,
	NSMessageWallGreeting: NamespaceMeta,
	NSBoard:               NamespaceMeta,
	NSFile:                NamespaceFile,
}

// Classify returns the class of a namespace code using the built-in table.
func Classify(namespace int) NamespaceClass {
	if class, ok := excludedNamespaces[namespace]; ok {
		return class
	}
	return NamespaceContent
}

// Classifier classifies namespace codes.
type Classifier interface {
	Classify(namespace int) NamespaceClass
}

// Ensure NamespaceTable implements Classifier at compile time.
var _ Classifier = (*NamespaceTable)(nil)

// NamespaceTable is the built-in namespace table extended with overrides.
type NamespaceTable struct {
	classes map[int]NamespaceClass
}

// NewClassifier returns a NamespaceTable starting from the built-in table.
// Overrides replace the built-in class of a code; mapping a code to
// NamespaceContent removes it from the exclusion table.
func NewClassifier(overrides map[int]NamespaceClass) *NamespaceTable {
	classes := make(map[int]NamespaceClass, len(excludedNamespaces)+len(overrides))
	for ns, class := range excludedNamespaces {
		classes[ns] = class
	}
	for ns, class := range overrides {
		if class == NamespaceContent {
			delete(classes, ns)
			continue
		}
		classes[ns] = class
	}
	return &NamespaceTable{classes: classes}
}

// Classify returns the class of a namespace code.
func (t *NamespaceTable) Classify(namespace int) NamespaceClass {
	if class, ok := t.classes[namespace]; ok {
		return class
	}
	return NamespaceContent
}

// Include reports whether pages of the class are rendered.
func Include(class NamespaceClass) bool {
	return class == NamespaceContent
}

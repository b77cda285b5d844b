package model

//go:generate go run github.com/dmarkham/enumer -type Kind -trimprefix Kind -transform lower -output kind.gen.go

// Kind enumerates the resource types this build knows, in form order. Stored
// rows keep the ResourceType string so unknown values still decode.
type Kind int

const (
	KindReflection Kind = iota
	KindVideo
	KindPDF
	KindLink
	KindPicture
)

// ResourceType returns the stored value for k
func (k Kind) ResourceType() ResourceType {
	return ResourceType(k.String())
}

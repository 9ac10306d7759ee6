package claims

// Service pairs the claim directory with the issuer keys it is checked
// against, for callers that manage both.
type Service struct {
	*Directory
	*IssuerKeys
}

func NewService(directory *Directory, keys *IssuerKeys) *Service {
	return &Service{Directory: directory, IssuerKeys: keys}
}

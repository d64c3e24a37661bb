package place

// Source identifies the provenance tier of an authoritative record. The tier
// drives the ranker's trust bonus when choosing canonical records.
type Source string

const (
	// SourceProviderImport is a record imported from the primary map provider.
	SourceProviderImport Source = "provider_import"
	// SourcePartnerLink is a record linked by hand to a partner identifier.
	SourcePartnerLink Source = "partner_link"
	// SourceEditorial is a record curated by the editorial team.
	SourceEditorial Source = "editorial"
	// SourceCommunity is a crowd-submitted record.
	SourceCommunity Source = "community"
	// SourceMock is synthetic data used in test environments.
	SourceMock Source = "mock"
	// SourceSeed is bootstrap seed data.
	SourceSeed Source = "seed"
)

// Known reports whether the source is one of the defined tiers. Unknown
// sources are legal input; they just earn no trust bonus.
func (s Source) Known() bool {
	switch s {
	case SourceProviderImport, SourcePartnerLink, SourceEditorial,
		SourceCommunity, SourceMock, SourceSeed:
		return true
	}
	return false
}

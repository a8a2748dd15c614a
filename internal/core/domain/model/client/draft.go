package client

// SubstationDraft is one submitted substation of a hierarchy edit. Ref is the
// identifier the caller sent: a persisted UUID, a temporary client-side key,
// or nothing.
type SubstationDraft struct {
	Ref        string
	Profile    SubstationProfile
	Components []ComponentDraft
}

type ComponentDraft struct {
	Ref  string
	Name string
	Kind Kind
	Info Info
}

package vault

import "sort"

// Entry is a single stored credential. Secret is kept as a byte slice so it
// can be zeroized when the store is wiped.
type Entry struct {
	Site     string `json:"site"`
	Username string `json:"username"`
	Secret   []byte `json:"secret"`
}

// Store is the decrypted credential set, keyed by site. Site names are
// matched exactly; "Example.com" and "example.com" are distinct entries.
// A Store only ever exists in memory; the container holds its encrypted
// form on disk.
type Store struct {
	Entries map[string]Entry `json:"entries"`
}

// NewStore returns an empty credential set
func NewStore() *Store {
	return &Store{Entries: make(map[string]Entry)}
}

// Add stores a credential for a site. Adding a site that already exists
// returns ErrEntryExists unless overwrite is set.
func (s *Store) Add(site, username string, secret []byte, overwrite bool) error {
	if s.Entries == nil {
		s.Entries = make(map[string]Entry)
	}
	if _, ok := s.Entries[site]; ok && !overwrite {
		return ErrEntryExists
	}
	s.Entries[site] = Entry{
		Site:     site,
		Username: username,
		Secret:   secret,
	}
	return nil
}

// Get returns the credential stored for a site, or ErrEntryNotFound.
func (s *Store) Get(site string) (Entry, error) {
	entry, ok := s.Entries[site]
	if !ok {
		return Entry{}, ErrEntryNotFound
	}
	return entry, nil
}

// Delete removes the credential stored for a site, or returns
// ErrEntryNotFound if the site is not stored.
func (s *Store) Delete(site string) error {
	if _, ok := s.Entries[site]; !ok {
		return ErrEntryNotFound
	}
	delete(s.Entries, site)
	return nil
}

// Sites returns all stored site names in sorted order. Secrets are not
// included; listing never exposes them.
func (s *Store) Sites() []string {
	sites := make([]string, 0, len(s.Entries))
	for site := range s.Entries {
		sites = append(sites, site)
	}
	sort.Strings(sites)
	return sites
}

// Len returns the number of stored entries
func (s *Store) Len() int {
	return len(s.Entries)
}

// Wipe zeroizes every secret and drops all entries. Call before the
// process exits so decrypted material does not outlive its use.
func (s *Store) Wipe() {
	for site, entry := range s.Entries {
		Zeroize(entry.Secret)
		delete(s.Entries, site)
	}
}

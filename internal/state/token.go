package state

const tokenKey = "token"

// Token returns the stored session credential, or "" if signed out.
func (m *Manager) Token() (string, error) {
	token, _, err := getValue(m.db, tokenKey)
	return token, err
}

// SaveToken stores the session credential.
func (m *Manager) SaveToken(token string) error {
	if token == "" {
		return m.DeleteToken()
	}
	return setValue(m.db, tokenKey, token)
}

// DeleteToken signs out.
func (m *Manager) DeleteToken() error {
	return deleteValue(m.db, tokenKey)
}

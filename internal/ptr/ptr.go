package ptr

func StringPtr(value string) *string {
	return &value
}

// String returns the pointed value or an empty string for nil.
func String(value *string) string {
	if value == nil {
		return ""
	}

	return *value
}

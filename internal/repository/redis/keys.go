package redis

const (
	catalogKey          = "catalog:all"
	catalogVersionKey   = "catalog:version"
	productHandlePrefix = "product:handle:"
	cartPrefix          = "cart:"
	adminSessionPrefix  = "admin:session:"
)

func productKey(handle string) string {
	return productHandlePrefix + handle
}

func cartKey(sessionID string) string {
	return cartPrefix + sessionID
}

func adminSessionKey(token string) string {
	return adminSessionPrefix + token
}

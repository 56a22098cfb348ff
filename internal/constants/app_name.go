package constants

const (
	APP_NEBULA        = "nebula"
	APP_SHOP_SERVICE  = "shop-service"
	APP_ADMIN_SERVICE = "admin-service"
	AUDIENCE_ADMIN    = "audience-admin"
)

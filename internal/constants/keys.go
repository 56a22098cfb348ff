package constants

const (
	KEY_APP_NAME       = "app"
	KEY_BODY           = "body"
	KEY_CACHE_KEY      = "cacheKey"
	KEY_CART           = "cart"
	KEY_CART_ITEM_ID   = "cartItemId"
	KEY_CATEGORY       = "category"
	KEY_CHANNEL        = "channel"
	KEY_CHECKOUT_STEP  = "checkoutStep"
	KEY_CONFIG         = "config"
	KEY_DB_URL         = "dbUrl"
	KEY_EMAIL          = "email"
	KEY_ENTITY         = "entity"
	KEY_EVENT          = "event"
	KEY_EVENT_ID       = "eventId"
	KEY_HEADER         = "header"
	KEY_MENU_ITEM      = "menuItem"
	KEY_MENU_ITEM_ID   = "menuItemId"
	KEY_ORDER          = "order"
	KEY_ORDER_ID       = "orderId"
	KEY_ORDERS         = "orders"
	KEY_PAYMENT_METHOD = "paymentMethod"
	KEY_PROCESS        = "process"
	KEY_REQUEST        = "request"
	KEY_REQUEST_BODY   = "requestBody"
	KEY_REQUEST_HOST   = "host"
	KEY_REQUEST_ID     = "requestId"
	KEY_REQUEST_IP     = "requesterIP"
	KEY_REQUEST_METHOD = "requestMethod"
	KEY_REQUEST_URI    = "requestURI"
	KEY_REQUEST_URL    = "requestURL"
	KEY_RESERVATION    = "reservation"
	KEY_RESERVATION_ID = "reservationId"
	KEY_RESERVATIONS   = "reservations"
	KEY_SESSION_ID     = "sessionId"
	KEY_SPAN_ID        = "spanId"
	KEY_STATUS         = "status"
	KEY_STATUS_FROM    = "statusFrom"
	KEY_STATUS_TO      = "statusTo"
	KEY_TAG            = "tag"
	KEY_TOKEN          = "token"
	KEY_TRACE_ID       = "traceId"
	KEY_USER_ID        = "userId"
)

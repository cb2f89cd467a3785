package i18n

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultLocale 默认语言
const DefaultLocale = "en"

// catalogs 各语言消息目录
var catalogs = map[string]map[string]string{
	"en": {
		"error.bad_request":            "Invalid request.",
		"error.unauthorized":           "Please login to continue.",
		"error.forbidden":              "You are not allowed to do that.",
		"error.not_found":              "Not found.",
		"error.internal":               "Something went wrong. Please try again.",
		"error.session_invalid":        "Session is invalid. Please login again.",
		"error.session_expired":        "Session expired. Please login again.",
		"error.session_id_invalid":     "Session is invalid. Please login again.",
		"error.login_too_many":         "Too many login attempts. Please wait and retry.",
		"error.rate_limit_unavailable": "Service is busy. Please try again.",
		"error.login_failed":           "Login failed. Check your credentials.",
		"error.register_failed":        "Registration failed.",
		"error.otp_invalid":            "OTP verification failed.",
		"error.password_change_failed": "Password change failed.",

		"error.cart_empty":         "Cart is empty!",
		"error.cart_line_invalid":  "Invalid cart item.",
		"error.address_incomplete": "Please fill in your complete address and pincode.",
		"error.pincode_invalid":    "Please enter a valid 6-digit pincode.",
		"error.coupon_invalid":     "Invalid coupon!",
		"error.recipe_incomplete":  "Please select Base, Sauce, and Cheese.",
		"error.favorite_not_found": "Favorite not found.",
		"error.favorite_invalid":   "Favorite name is required.",

		"error.payment_order_failed":      "Failed to create payment order.",
		"error.payment_verify_failed":     "Payment verification failed.",
		"error.checkout_not_awaiting":     "No payment is awaiting completion.",
		"error.order_create_failed":       "Failed to place order.",
		"error.order_fetch_failed":        "Failed to load orders.",
		"error.order_snapshot_missing":    "No recent order found.",
		"error.inventory_fetch_failed":    "Failed to load inventory.",
		"error.inventory_update_failed":   "Failed to update inventory.",
		"error.catalog_fetch_failed":      "Failed to load pizzas.",
		"error.order_status_failed":       "Failed to update order status.",
		"error.order_delete_failed":       "Failed to delete order.",
		"error.order_stats_failed":        "Failed to load order stats.",

		"msg.coupon_applied":  "Coupon applied! 10% discount.",
		"msg.order_placed":    "Order placed successfully!",
		"msg.added_to_cart":   "Added to cart!",
		"msg.favorite_saved":  "Saved to favorites!",

		"email.order_confirmation.subject": "Your pizza order is confirmed!",
		"email.order_confirmation.body":    "Thanks for your order!\n\nOrder ID: %s\nTotal paid: %s\n\nYour pizzas are on the way.",
	},
}

// NormalizeLocale 折叠语言标签到受支持的主语言，未知时回落默认语言
func NormalizeLocale(raw string) string {
	if locale := normalizeLocale(raw); locale != "" {
		return locale
	}
	return DefaultLocale
}

// ResolveLocale 解析请求语言（query 优先于 Accept-Language）
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if locale := normalizeLocale(c.Query("locale")); locale != "" {
		return locale
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		if locale := normalizeLocale(strings.SplitN(part, ";", 2)[0]); locale != "" {
			return locale
		}
	}
	return DefaultLocale
}

// T 按语言翻译消息键；未命中时回落默认语言，再回落键本身
func T(locale, key string) string {
	if catalog, ok := catalogs[locale]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if locale != DefaultLocale {
		if msg, ok := catalogs[DefaultLocale][key]; ok {
			return msg
		}
	}
	return key
}

func normalizeLocale(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	// en-US / en_GB 等统一折叠到主语言
	trimmed = strings.ReplaceAll(trimmed, "_", "-")
	primary := strings.SplitN(trimmed, "-", 2)[0]
	if _, ok := catalogs[primary]; ok {
		return primary
	}
	return ""
}

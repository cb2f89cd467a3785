package public

import (
	"errors"
	"strings"

	"github.com/pizzeria-next/internal/checkout"
	"github.com/pizzeria-next/internal/http/response"
	"github.com/pizzeria-next/internal/pricing"
	"github.com/pizzeria-next/internal/service"
	"github.com/pizzeria-next/internal/upstream"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	if errors.Is(err, upstream.ErrRequestFailed) {
		respondErrorWithMsg(c, response.CodeUpstream, upstreamErrorMessage(err), nil)
		return
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

// upstreamErrorMessage 剥离包装前缀，保留上游给出的原始提示。
func upstreamErrorMessage(err error) string {
	msg := err.Error()
	prefix := upstream.ErrRequestFailed.Error() + ": "
	if strings.HasPrefix(msg, prefix) {
		return strings.TrimPrefix(msg, prefix)
	}
	return msg
}

var authErrorRules = []mappedHandlerError{
	{target: upstream.ErrUnauthorized, code: response.CodeUnauthorized, key: "error.login_failed"},
	{target: service.ErrNotLoggedIn, code: response.CodeUnauthorized, key: "error.unauthorized"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrRecipeIncomplete, code: response.CodeBadRequest, key: "error.recipe_incomplete"},
	{target: service.ErrPizzaNotFound, code: response.CodeNotFound, key: "error.not_found"},
	{target: pricing.ErrCouponInvalid, code: response.CodeBadRequest, key: "error.coupon_invalid"},
}

var favoriteErrorRules = []mappedHandlerError{
	{target: service.ErrFavoriteInvalid, code: response.CodeBadRequest, key: "error.favorite_invalid"},
	{target: service.ErrFavoriteNotFound, code: response.CodeNotFound, key: "error.favorite_not_found"},
	{target: service.ErrRecipeIncomplete, code: response.CodeBadRequest, key: "error.recipe_incomplete"},
}

var checkoutBeginErrorRules = []mappedHandlerError{
	{target: checkout.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: checkout.ErrAddressIncomplete, code: response.CodeBadRequest, key: "error.address_incomplete"},
	{target: checkout.ErrPincodeInvalid, code: response.CodeBadRequest, key: "error.pincode_invalid"},
	{target: pricing.ErrCouponInvalid, code: response.CodeBadRequest, key: "error.coupon_invalid"},
	{target: checkout.ErrPaymentOrderFailed, code: response.CodeUpstream, key: "error.payment_order_failed"},
	{target: upstream.ErrUnauthorized, code: response.CodeUnauthorized, key: "error.unauthorized"},
}

var checkoutCompleteErrorRules = []mappedHandlerError{
	{target: checkout.ErrNotAwaitingPayment, code: response.CodeBadRequest, key: "error.checkout_not_awaiting"},
	{target: checkout.ErrPaymentVerifyFailed, code: response.CodeBadRequest, key: "error.payment_verify_failed"},
	{target: upstream.ErrUnauthorized, code: response.CodeUnauthorized, key: "error.unauthorized"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrNotLoggedIn, code: response.CodeUnauthorized, key: "error.unauthorized"},
	{target: upstream.ErrUnauthorized, code: response.CodeUnauthorized, key: "error.session_expired"},
}

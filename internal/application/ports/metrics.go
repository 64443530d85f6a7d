package ports

type Metrics interface {
	CartOperation(storefront, operation string)
	CheckoutAttempt(storefront, kind string)
	CheckoutSuccess(storefront, kind string)
	CheckoutFailure(storefront, kind, reason string)
	DeepLink(storefront, channel string)
}

package push

// Config holds Web Push configuration. The VAPID key pair identifies the
// application server to the browser push services; Subscriber is the
// contact address push services may use to reach the operator.
type Config struct {
	VAPIDPublicKey  string `env:"VAPID_PUBLIC_KEY"`
	VAPIDPrivateKey string `env:"VAPID_PRIVATE_KEY"`
	Subscriber      string `env:"VAPID_SUBSCRIBER" envDefault:"mailto:support@dwellos.io"`
	TTL             int    `env:"PUSH_TTL" envDefault:"3600"` // Seconds the push service keeps an undelivered message.
}

package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Email    EmailConfig
	MoMo     MoMoConfig
	VNPay    VNPayConfig
	PayPal   PayPalConfig
}

type AppConfig struct {
	Name    string
	Port    string
	BaseURL string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type AuthConfig struct {
	// Secret verifies bearer tokens issued by the external identity provider.
	Secret string
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type MoMoConfig struct {
	PartnerCode string
	AccessKey   string
	SecretKey   string
	PayURL      string
}

type VNPayConfig struct {
	TmnCode    string
	HashSecret string
	PayURL     string
}

type PayPalConfig struct {
	ClientID  string
	Secret    string
	WebhookID string
	PayURL    string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("APP_BASE_URL", "http://localhost:8080")
	viper.SetDefault("MOMO_PAY_URL", "https://test-payment.momo.vn/v2/gateway/pay")
	viper.SetDefault("VNP_PAY_URL", "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html")
	viper.SetDefault("PAYPAL_PAY_URL", "https://www.sandbox.paypal.com/checkoutnow")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			BaseURL: viper.GetString("APP_BASE_URL"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Auth: AuthConfig{
			Secret: viper.GetString("AUTH_SECRET"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		MoMo: MoMoConfig{
			PartnerCode: viper.GetString("MOMO_PARTNER_CODE"),
			AccessKey:   viper.GetString("MOMO_ACCESS_KEY"),
			SecretKey:   viper.GetString("MOMO_SECRET_KEY"),
			PayURL:      viper.GetString("MOMO_PAY_URL"),
		},
		VNPay: VNPayConfig{
			TmnCode:    viper.GetString("VNP_TMNCODE"),
			HashSecret: viper.GetString("VNP_HASHSECRET"),
			PayURL:     viper.GetString("VNP_PAY_URL"),
		},
		PayPal: PayPalConfig{
			ClientID:  viper.GetString("PAYPAL_CLIENT_ID"),
			Secret:    viper.GetString("PAYPAL_SECRET"),
			WebhookID: viper.GetString("PAYPAL_WEBHOOK_ID"),
			PayURL:    viper.GetString("PAYPAL_PAY_URL"),
		},
	}

	return config, nil
}

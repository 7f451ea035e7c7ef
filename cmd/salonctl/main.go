package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/salonhub/salonhub-go/internal/addresses"
	"github.com/salonhub/salonhub-go/internal/api"
	"github.com/salonhub/salonhub-go/internal/bookings"
	"github.com/salonhub/salonhub-go/internal/cart"
	"github.com/salonhub/salonhub-go/internal/catalog"
	"github.com/salonhub/salonhub-go/internal/catalog/cache"
	"github.com/salonhub/salonhub-go/internal/checkout"
	"github.com/salonhub/salonhub-go/internal/domain"
	"github.com/salonhub/salonhub-go/internal/geo"
	"github.com/salonhub/salonhub-go/internal/notifications"
	"github.com/salonhub/salonhub-go/internal/payments"
	"github.com/salonhub/salonhub-go/internal/settings"
	"github.com/salonhub/salonhub-go/internal/timeline"
	"github.com/salonhub/salonhub-go/internal/wallet"
)

type Config struct {
	BaseURL        string
	Token          string
	SettingsDBPath string
	RedisAddr      string
	DeliveryFee    float64
	ServiceFee     float64
	RequestTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		BaseURL:        getEnv("SALONHUB_API_URL", "http://localhost:8080/api/v1"),
		Token:          getEnv("SALONHUB_TOKEN", ""),
		SettingsDBPath: getEnv("SALONHUB_SETTINGS_DB", "salonhub-settings.db"),
		RedisAddr:      getEnv("SALONHUB_REDIS_ADDR", ""),
		DeliveryFee:    50,
		ServiceFee:     25,
		RequestTimeout: 30 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// terminalLocation is the CLI's location collaborator: a terminal has no
// GPS, so permission is always denied and checkout falls back to the
// explicit no-coordinates confirmation.
type terminalLocation struct{}

func (terminalLocation) RequestPermission(context.Context) (bool, error) { return false, nil }
func (terminalLocation) CurrentPosition(context.Context) (float64, float64, error) {
	return 0, 0, fmt.Errorf("no device location available")
}

func main() {
	cfg := loadConfig()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	client := api.NewClient(api.Config{
		BaseURL: cfg.BaseURL,
		Tokens:  api.StaticToken(cfg.Token),
	})

	store, err := settings.NewStore(cfg.SettingsDBPath)
	if err != nil {
		log.Fatalf("failed to open settings store: %v", err)
	}
	defer store.Close()

	var listings cache.Listings
	if cfg.RedisAddr != "" {
		listings = cache.NewRedisCache(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	}

	cartSvc := cart.NewService(client)
	addrSvc := addresses.NewService(client)
	walletSvc := wallet.NewService(client, store, wallet.DefaultGatePolicy())
	paymentSvc := payments.NewService(client, nil)
	catalogSvc := catalog.NewService(client, listings)
	bookingSvc := bookings.NewService(client)
	notifySvc := notifications.NewService(client)
	resolver := geo.NewResolver(client, terminalLocation{}, 15*time.Second)
	flow := checkout.NewFlow(client, cartSvc, addrSvc, walletSvc, paymentSvc, resolver,
		checkout.Fees{Delivery: cfg.DeliveryFee, Service: cfg.ServiceFee})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	switch os.Args[1] {
	case "products":
		products, err := catalogSvc.Products(ctx)
		exitOnError(err)
		printJSON(products)
	case "services":
		services, err := catalogSvc.Services(ctx)
		exitOnError(err)
		printJSON(services)
	case "cart":
		serviceCart, err := cartSvc.ServiceCart(ctx)
		exitOnError(err)
		productCart, err := cartSvc.ProductCart(ctx)
		exitOnError(err)
		totals := cart.ComputeTotals(serviceCart.Items, productCart.Items, cfg.DeliveryFee, cfg.ServiceFee)
		printJSON(map[string]any{"services": serviceCart, "products": productCart, "totals": totals})
	case "wallet":
		w, err := walletSvc.Balance(ctx)
		exitOnError(err)
		printJSON(w)
	case "transactions":
		txs, err := walletSvc.Transactions(ctx, 1, "")
		exitOnError(err)
		printJSON(txs)
	case "accept-terms":
		exitOnError(store.SetTermsAccepted(ctx, true))
		log.Println("wallet terms accepted")
	case "bookings":
		items, err := bookingSvc.MyBookings(ctx)
		exitOnError(err)
		for _, b := range items {
			printJSON(map[string]any{"booking": b, "timeline": timeline.ForBooking(b)})
		}
	case "orders":
		orders, err := bookingSvc.Orders(ctx)
		exitOnError(err)
		for _, o := range orders {
			printJSON(map[string]any{"order": o, "timeline": timeline.ForOrder(o)})
		}
	case "notifications":
		items, err := notifySvc.List(ctx)
		exitOnError(err)
		printJSON(items)
	case "checkout":
		state, err := flow.Load(ctx)
		exitOnError(err)
		printJSON(map[string]any{"state": state, "totals": flow.Totals()})
	case "place-order":
		_, err := flow.Load(ctx)
		exitOnError(err)
		// Cash on delivery only from the terminal; the payment sheet is a
		// mobile-side collaborator.
		conf, err := flow.PlaceOrder(ctx, domain.PaymentMethodCOD,
			checkout.PlaceOptions{ConfirmWithoutCoordinates: true})
		exitOnError(err)
		printJSON(conf)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: salonctl <command>

commands:
  products        list the product catalog
  services        list the service catalog
  cart            show both carts with computed totals
  wallet          show wallet balance
  transactions    show wallet transaction history
  accept-terms    accept the wallet terms locally
  bookings        list service bookings with their timelines
  orders          list orders with their timelines
  notifications   list notifications
  checkout        load the checkout state
  place-order     place a cash-on-delivery order from the current carts`)
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode output: %v", err)
	}
	fmt.Println(string(data))
}

func exitOnError(err error) {
	if err != nil {
		log.Fatalf("error: %v", err)
	}
}

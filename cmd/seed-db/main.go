// Command seed-db loads a demo catalog, sample coupons, site settings, and an
// admin API key into the database.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/almasoman/almas-api/internal/api"
	"github.com/almasoman/almas-api/internal/repository"
)

func main() {
	var (
		databaseURL  string
		apiKey       string
		apiKeyPepper string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&apiKey, "api-key", "", "admin API key to seed (or ALMAS_SEED_API_KEY env)")
	flag.StringVar(&apiKeyPepper, "api-key-pepper", "", "HMAC pepper for API key hashing (or ALMAS_API_KEY_PEPPER env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}
	if apiKey == "" {
		apiKey = os.Getenv("ALMAS_SEED_API_KEY")
	}
	if apiKey == "" {
		slog.Error("API key is required: set --api-key or ALMAS_SEED_API_KEY")
		os.Exit(1)
	}
	if apiKeyPepper == "" {
		apiKeyPepper = os.Getenv("ALMAS_API_KEY_PEPPER")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, apiKey, apiKeyPepper); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, apiKey, pepper string) error {
	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	if err := seedProducts(ctx, pool); err != nil {
		return errors.Wrap(err, "seed products")
	}
	if err := seedCoupons(ctx, pool); err != nil {
		return errors.Wrap(err, "seed coupons")
	}
	if err := seedSettings(ctx, pool); err != nil {
		return errors.Wrap(err, "seed settings")
	}
	if err := seedAPIKey(ctx, pool, apiKey, pepper); err != nil {
		return errors.Wrap(err, "seed api key")
	}

	return nil
}

const upsertProductSQL = `INSERT INTO products
	(id, name_en, name_ar, description_en, description_ar, price, image_url, category)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO UPDATE SET
		name_en = EXCLUDED.name_en, name_ar = EXCLUDED.name_ar,
		description_en = EXCLUDED.description_en, description_ar = EXCLUDED.description_ar,
		price = EXCLUDED.price, image_url = EXCLUDED.image_url, category = EXCLUDED.category`

type seedProduct struct {
	id       string
	nameEn   string
	nameAr   string
	descEn   string
	descAr   string
	price    string
	imageURL string
	category string
}

var catalog = []seedProduct{
	{
		id: "1", nameEn: "Classic Gold Ring", nameAr: "خاتم ذهب كلاسيكي",
		descEn: "18k gold band with a brushed finish.", descAr: "خاتم من الذهب عيار 18 بلمسة نهائية ناعمة.",
		price: "45.000", imageURL: "/images/gold-ring.jpg", category: "rings",
	},
	{
		id: "2", nameEn: "Pearl Necklace", nameAr: "عقد لؤلؤ",
		descEn: "Freshwater pearls on a silver chain.", descAr: "لآلئ المياه العذبة على سلسلة فضية.",
		price: "80.000", imageURL: "/images/pearl-necklace.jpg", category: "necklaces",
	},
	{
		id: "3", nameEn: "Silver Bangle", nameAr: "إسوارة فضة",
		descEn: "Handcrafted Omani silver bangle.", descAr: "إسوارة فضية عمانية مصنوعة يدوياً.",
		price: "22.500", imageURL: "/images/silver-bangle.jpg", category: "bracelets",
	},
	{
		id: "4", nameEn: "Emerald Earrings", nameAr: "أقراط زمرد",
		descEn: "Drop earrings set with emeralds.", descAr: "أقراط متدلية مرصعة بالزمرد.",
		price: "120.000", imageURL: "/images/emerald-earrings.jpg", category: "earrings",
	},
	{
		id: "5", nameEn: "Frankincense Pendant", nameAr: "قلادة اللبان",
		descEn: "Amber resin pendant inspired by Dhofari frankincense.", descAr: "قلادة من راتنج العنبر مستوحاة من لبان ظفار.",
		price: "35.000", imageURL: "/images/frankincense-pendant.jpg", category: "necklaces",
	},
}

func seedProducts(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("upserting products", slog.Int("count", len(catalog)))

	for _, p := range catalog {
		price, err := decimal.NewFromString(p.price)
		if err != nil {
			return errors.Wrapf(err, "parse price for product %s", p.id)
		}
		if _, err := pool.Exec(ctx, upsertProductSQL,
			p.id, p.nameEn, p.nameAr, p.descEn, p.descAr, price, p.imageURL, p.category,
		); err != nil {
			return errors.Wrapf(err, "upsert product %s", p.id)
		}

		slog.Info("upserted product", slog.String("id", p.id), slog.String("name", p.nameEn))
	}

	return nil
}

const upsertCouponSQL = `INSERT INTO coupons (id, code, discount_percentage, expiry_date, active)
	VALUES ($1, UPPER($2), $3, $4, $5)
	ON CONFLICT (code) DO UPDATE SET
		discount_percentage = EXCLUDED.discount_percentage,
		expiry_date = EXCLUDED.expiry_date,
		active = EXCLUDED.active`

func seedCoupons(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("seeding demo coupons")

	nextYear := time.Now().UTC().AddDate(1, 0, 0).Format(time.DateOnly)
	coupons := []struct {
		id         string
		code       string
		percentage int64
		expiry     string
		active     bool
	}{
		{id: "seed-summer10", code: "SUMMER10", percentage: 10, expiry: nextYear, active: true},
		{id: "seed-welcome20", code: "WELCOME20", percentage: 20, expiry: nextYear, active: true},
		{id: "seed-expired", code: "EXPIRED", percentage: 50, expiry: "2020-01-01", active: true},
		{id: "seed-inactive", code: "INACTIVE", percentage: 30, expiry: nextYear, active: false},
	}

	for _, c := range coupons {
		if _, err := pool.Exec(ctx, upsertCouponSQL,
			c.id, c.code, decimal.NewFromInt(c.percentage), c.expiry, c.active,
		); err != nil {
			return errors.Wrapf(err, "upsert coupon %s", c.code)
		}

		slog.Info("upserted coupon", slog.String("code", c.code))
	}

	return nil
}

const updateSettingsSQL = `UPDATE site_settings SET
	card_fee = $1, whatsapp_number = $2, hero_image_url = $3
	WHERE id = 1`

func seedSettings(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("seeding site settings")

	if _, err := pool.Exec(ctx, updateSettingsSQL,
		decimal.RequireFromString("1.000"), "96890000000", "/images/hero.jpg",
	); err != nil {
		return errors.Wrap(err, "update site settings")
	}

	return nil
}

const upsertAPIKeySQL = `INSERT INTO api_keys (id, key_hash, name)
	VALUES ($1, $2, $3)
	ON CONFLICT (id) DO UPDATE SET key_hash = EXCLUDED.key_hash, name = EXCLUDED.name`

func seedAPIKey(ctx context.Context, pool *pgxpool.Pool, apiKey, pepper string) error {
	slog.Info("seeding admin API key")

	keyHash := api.HashAPIKey(apiKey, []byte(pepper))

	if _, err := pool.Exec(ctx, upsertAPIKeySQL, "default", keyHash, "Default admin key"); err != nil {
		return errors.Wrap(err, "upsert admin API key")
	}

	slog.Info("upserted API key", slog.String("id", "default"))

	return nil
}

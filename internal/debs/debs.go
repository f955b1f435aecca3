package deps

import (
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tgarmenliev/sofaccess-api/config"
	"github.com/tgarmenliev/sofaccess-api/internal/db"
	"github.com/tgarmenliev/sofaccess-api/internal/http/nominatim"
	"github.com/tgarmenliev/sofaccess-api/util/storage"
)

type Dependencies struct {
	DB         *db.DB
	Cloudinary *storage.Cloudinary
	Nominatim  *nominatim.Client
}

func New(cfg *config.Config) *Dependencies {
	database, err := db.New(cfg.Dsn)
	if err != nil {
		log.Panicln("failed to connect to database", "error", err)
	}

	cloudinary := storage.NewCloudinary(cfg)
	geocoder := nominatim.NewClient(cfg.NominatimBaseURL)

	deps := Dependencies{
		DB:         database,
		Cloudinary: cloudinary,
		Nominatim:  geocoder,
	}
	return &deps
}

func (d *Dependencies) Pool() *pgxpool.Pool {
	return d.DB.Pool()
}

package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"event-discovery-be/internal/entity"
	"event-discovery-be/internal/repository/implementation"
	"event-discovery-be/pkg/database"
	"event-discovery-be/pkg/locations"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// lsadSuffixes are the legal/statistical descriptions the Census Gazetteer
// appends to place names. They are stripped so "Newton city" matches "newton".
var lsadSuffixes = []string{
	" city", " town", " village", " borough", " CDP", " municipality", " plantation",
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	if len(os.Args) < 2 {
		log.Fatal("Usage: seed_places <gazetteer.tsv>")
	}
	path := os.Args[1]

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	placeRepo := implementation.NewPlaceRepository(db)

	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("Error: cannot open %s: %v", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Error: cannot parse %s: %v", path, err)
	}
	if len(rows) < 2 {
		log.Fatal("Error: file has no data rows")
	}

	columns := indexColumns(rows[0])
	for _, required := range []string{"USPS", "GEOID", "NAME", "INTPTLAT", "INTPTLONG"} {
		if _, ok := columns[required]; !ok {
			log.Fatalf("Error: missing column %s in header", required)
		}
	}

	var places []*entity.Place
	skipped := 0
	for _, row := range rows[1:] {
		place, err := parseRow(row, columns)
		if err != nil {
			skipped++
			continue
		}
		places = append(places, place)
	}

	log.Printf("Parsed %d places (%d rows skipped)", len(places), skipped)

	ctx := context.Background()
	if err := placeRepo.CreateBulk(ctx, places); err != nil {
		log.Fatalf("Error: failed to insert places: %v", err)
	}

	total, err := placeRepo.Count(ctx)
	if err != nil {
		log.Fatalf("Error: failed to count places: %v", err)
	}
	log.Printf("✅ Success: places table now holds %d rows", total)
}

func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.ToUpper(name))] = i
	}
	return columns
}

func parseRow(row []string, columns map[string]int) (*entity.Place, error) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	name := stripLSAD(field("NAME"))
	state := field("USPS")
	if name == "" || state == "" {
		return nil, fmt.Errorf("missing name or state")
	}

	lat, err := strconv.ParseFloat(field("INTPTLAT"), 64)
	if err != nil {
		return nil, err
	}
	lng, err := strconv.ParseFloat(field("INTPTLONG"), 64)
	if err != nil {
		return nil, err
	}

	// Population is optional; some Gazetteer editions omit it.
	population, _ := strconv.ParseInt(field("POPULATION"), 10, 64)

	return &entity.Place{
		Id:             uuid.New(),
		GeoId:          field("GEOID"),
		Name:           name,
		NormalizedName: locations.NormalizeForMatching(name),
		State:          state,
		CountryCode:    "US",
		Latitude:       lat,
		Longitude:      lng,
		Population:     population,
	}, nil
}

func stripLSAD(name string) string {
	for _, suffix := range lsadSuffixes {
		if strings.HasSuffix(name, suffix) {
			return strings.TrimSpace(strings.TrimSuffix(name, suffix))
		}
	}
	return name
}

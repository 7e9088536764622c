package main

import (
	"fmt"
	"log"
	"time"

	"github.com/RKMF/kammerfest/internal/config"
	"github.com/RKMF/kammerfest/internal/db"
)

// Fills an empty database with a believable festival week so the site
// can be browsed locally.
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	fmt.Println("Genererer demoinnhold...")

	venues := createVenues()
	artists := createArtists()
	createEvents(venues, artists)
	createArticles()
	createFrontPage()
	createSettings()

	fmt.Println("Demoinnhold er klart")
}

func createVenues() []db.Venue {
	var count int64
	db.DB.Model(&db.Venue{}).Count(&count)
	if count > 0 {
		fmt.Println("Spillesteder finnes allerede, hopper over")
		var existing []db.Venue
		db.DB.Find(&existing)
		return existing
	}

	venues := []db.Venue{
		{Slug: "risor-kirke", NameNO: "Risør kirke", NameEN: "Risør Church", Address: "Prestegata 7, 4950 Risør", MapURL: "https://maps.google.com/?q=Ris%C3%B8r+kirke"},
		{Slug: "festivalteltet", NameNO: "Festivalteltet", NameEN: "The Festival Tent", Address: "Torvet, 4950 Risør"},
		{Slug: "risorhuset", NameNO: "Risørhuset", NameEN: "Risørhuset", Address: "Kragsgata 32, 4950 Risør"},
	}
	for i := range venues {
		if err := db.DB.Create(&venues[i]).Error; err != nil {
			log.Fatalf("failed to create venue: %v", err)
		}
	}
	fmt.Println("Spillesteder opprettet")
	return venues
}

func createArtists() []db.Artist {
	var count int64
	db.DB.Model(&db.Artist{}).Count(&count)
	if count > 0 {
		fmt.Println("Artister finnes allerede, hopper over")
		var existing []db.Artist
		db.DB.Find(&existing)
		return existing
	}

	artists := []db.Artist{
		{
			Slug: "leif-ove-andsnes", Name: "Leif Ove Andsnes",
			InstrumentNO: "Klaver", InstrumentEN: "Piano",
			BioNO:    "En av verdens fremste pianister, med en lang rekke prisbelønte innspillinger.",
			BioEN:    "One of the world's leading pianists, with an extensive catalogue of award-winning recordings.",
			Featured: true, SortOrder: 1,
		},
		{
			Slug: "vilde-frang", Name: "Vilde Frang",
			InstrumentNO: "Fiolin", InstrumentEN: "Violin",
			BioNO:    "Internasjonalt etterspurt fiolinist med base i Oslo.",
			BioEN:    "Internationally sought-after violinist based in Oslo.",
			Featured: true, SortOrder: 2,
		},
		{
			Slug: "truls-mork", Name: "Truls Mørk",
			InstrumentNO: "Cello", InstrumentEN: "Cello",
			BioNO: "Cellist kjent for sin varme klang og dype musikalitet.",
			BioEN: "Cellist known for his warm tone and deep musicality.",
		},
	}
	for i := range artists {
		if err := db.DB.Create(&artists[i]).Error; err != nil {
			log.Fatalf("failed to create artist: %v", err)
		}
	}
	fmt.Println("Artister opprettet")
	return artists
}

func createEvents(venues []db.Venue, artists []db.Artist) {
	var count int64
	db.DB.Model(&db.Event{}).Count(&count)
	if count > 0 {
		fmt.Println("Konserter finnes allerede, hopper over")
		return
	}
	if len(venues) < 2 || len(artists) < 2 {
		log.Fatal("not enough venues or artists for demo events")
	}

	events := []db.Event{
		{
			Slug:          "apningskonsert",
			TitleNO:       "Åpningskonsert",
			TitleEN:       "Opening Concert",
			DescriptionNO: "Festivalen åpner med kammermusikk av **Grieg** og *Brahms*.",
			DescriptionEN: "The festival opens with chamber music by **Grieg** and *Brahms*.",
			Status:        "published",
			PriceTextNO:   "Fra 350 kr",
			PriceTextEN:   "From NOK 350",
			TicketURL:     "https://billetter.kammerfest.no/apningskonsert",
			VenueID:       venues[0].ID,
			Artists:       []db.Artist{artists[0], artists[1]},
			Dates: []db.EventDate{
				{StartsAt: time.Date(2026, 6, 23, 19, 30, 0, 0, time.UTC)},
			},
		},
		{
			Slug:          "morgenkonsert",
			TitleNO:       "Morgenkonsert",
			TitleEN:       "Morning Concert",
			DescriptionNO: "Start dagen med solostykker for cello.",
			DescriptionEN: "Start the day with solo works for cello.",
			Status:        "published",
			PriceTextNO:   "150 kr",
			PriceTextEN:   "NOK 150",
			VenueID:       venues[1].ID,
			Artists:       []db.Artist{artists[len(artists)-1]},
			Dates: []db.EventDate{
				{StartsAt: time.Date(2026, 6, 24, 11, 0, 0, 0, time.UTC)},
				{StartsAt: time.Date(2026, 6, 25, 11, 0, 0, 0, time.UTC)},
			},
		},
		{
			Slug:    "program-slippes-snart",
			TitleNO: "Program slippes snart",
			Status:  "draft",
			VenueID: venues[0].ID,
			Dates: []db.EventDate{
				{StartsAt: time.Date(2026, 6, 27, 20, 0, 0, 0, time.UTC)},
			},
		},
	}
	for i := range events {
		if err := db.DB.Create(&events[i]).Error; err != nil {
			log.Fatalf("failed to create event: %v", err)
		}
	}
	fmt.Println("Konserter opprettet")
}

func createArticles() {
	var count int64
	db.DB.Model(&db.Article{}).Count(&count)
	if count > 0 {
		fmt.Println("Nyheter finnes allerede, hopper over")
		return
	}

	publishedAt := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	articles := []db.Article{
		{
			Slug:        "programmet-er-klart",
			TitleNO:     "Programmet er klart",
			TitleEN:     "The programme is ready",
			LeadNO:      "Årets festival byr på over tjue konserter.",
			LeadEN:      "This year's festival offers more than twenty concerts.",
			BodyNO:      "Vi gleder oss til en uke fylt med kammermusikk i Risør.",
			BodyEN:      "We look forward to a week filled with chamber music in Risør.",
			Status:      "published",
			PublishedAt: &publishedAt,
		},
		{
			Slug:    "frivillige-soekes",
			TitleNO: "Frivillige søkes",
			LeadNO:  "Bli med på laget som gjør festivalen mulig.",
			BodyNO:  "Vi trenger frivillige til billettkontroll, rigg og artistvertskap.",
			Status:  "draft",
		},
	}
	for i := range articles {
		if err := db.DB.Create(&articles[i]).Error; err != nil {
			log.Fatalf("failed to create article: %v", err)
		}
	}
	fmt.Println("Nyheter opprettet")
}

func createFrontPage() {
	var count int64
	db.DB.Model(&db.Page{}).Count(&count)
	if count > 0 {
		fmt.Println("Sider finnes allerede, hopper over")
		return
	}

	page := db.Page{
		Slug:    "forside",
		TitleNO: "Forside",
		TitleEN: "Home",
		Status:  "published",
		Sections: []db.PageSection{
			{
				Kind: db.SectionHero, Position: 1,
				HeadingNO: "Risør Kammermusikkfest 2026",
				HeadingEN: "Risør Chamber Music Festival 2026",
				BodyNO:    "23.–28. juni i trehusbyen ved havet.",
				BodyEN:    "23–28 June in the wooden town by the sea.",
			},
			{
				Kind: db.SectionEventList, Position: 2,
				HeadingNO: "Programmet", HeadingEN: "The programme",
			},
			{
				Kind: db.SectionArtistGallery, Position: 3,
				HeadingNO: "Årets artister", HeadingEN: "This year's artists",
			},
			{
				Kind: db.SectionVideo, Position: 4,
				HeadingNO: "Høydepunkter fra i fjor",
				HeadingEN: "Highlights from last year",
				VideoURL:  "https://www.youtube.com/watch?v=jNQXAC9IVRw",
			},
		},
	}
	if err := db.DB.Create(&page).Error; err != nil {
		log.Fatalf("failed to create front page: %v", err)
	}
	fmt.Println("Forside opprettet")
}

func createSettings() {
	var count int64
	db.DB.Model(&db.SystemSetting{}).Count(&count)
	if count > 0 {
		fmt.Println("Innstillinger finnes allerede, hopper over")
		return
	}

	start := time.Date(2026, 6, 23, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 28, 0, 0, 0, 0, time.UTC)
	settings := db.SystemSetting{
		SiteNameNO:    "Risør Kammermusikkfest",
		SiteNameEN:    "Risør Chamber Music Festival",
		FooterTextNO:  "Risør Kammermusikkfest, Postboks 24, 4951 Risør",
		FooterTextEN:  "Risør Chamber Music Festival, PO Box 24, 4951 Risør",
		TicketShopURL: "https://billetter.kammerfest.no",
		FestivalStart: &start,
		FestivalEnd:   &end,
		ContactEmail:  "post@kammerfest.no",
		InstagramURL:  "https://www.instagram.com/kammerfest",
		FacebookURL:   "https://www.facebook.com/kammerfest",
	}
	if err := db.DB.Create(&settings).Error; err != nil {
		log.Fatalf("failed to create settings: %v", err)
	}
	fmt.Println("Innstillinger opprettet")
}

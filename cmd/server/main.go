package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/opostest/backend/internal/bank"
	"github.com/opostest/backend/internal/database"
	"github.com/opostest/backend/internal/quiz"
	"github.com/opostest/backend/internal/store"
	"github.com/rs/cors"
)

func main() {
	b, persister, err := buildBank()
	if err != nil {
		log.Fatalf("Failed to load question bank: %v", err)
	}
	if b.Len() == 0 {
		log.Printf("WARN: question bank is empty, quiz generation will fail until questions are loaded")
	}

	service := quiz.NewService(b, persister)
	handler := quiz.NewHandler(service, []byte(getEnv("SESSION_SECRET", "dev-session-secret")))

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/themes", handler.GetThemes).Methods("GET")
	api.HandleFunc("/quiz/generate", handler.Generate).Methods("POST")
	api.HandleFunc("/quiz/answer", handler.Answer).Methods("POST")
	api.HandleFunc("/quiz/correct", handler.Correct).Methods("POST")
	api.HandleFunc("/quiz/repeat", handler.Repeat).Methods("POST")
	api.HandleFunc("/quiz/new", handler.New).Methods("POST")
	api.HandleFunc("/quiz/review", handler.ToggleReview).Methods("POST")
	api.HandleFunc("/quiz/review", handler.GetReview).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	port := getEnv("PORT", "8080")

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, c.Handler(r)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// buildBank assembles the question bank and the review persister for the
// configured source. File mode reads the bank document directly; postgres
// mode serves from the database, seeding it from the document on first run.
func buildBank() (*bank.Bank, quiz.ReviewPersister, error) {
	questionsFile := getEnv("QUESTIONS_FILE", "data/preguntas.json")

	switch source := getEnv("BANK_SOURCE", "file"); source {
	case "postgres":
		db, err := database.Connect()
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(db); err != nil {
			return nil, nil, err
		}

		st := store.NewStore(db)
		ctx := context.Background()

		count, err := st.CountQuestions()
		if err != nil {
			return nil, nil, err
		}
		if count == 0 {
			seed, err := bank.LoadFile(questionsFile)
			if err != nil {
				return nil, nil, err
			}
			if err := st.ImportQuestions(ctx, seed.Questions()); err != nil {
				return nil, nil, err
			}
			log.Printf("Seeded database with %d questions from %s", seed.Len(), questionsFile)
		}

		questions, err := st.LoadQuestions(ctx)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Loaded %d questions from database", len(questions))
		return bank.New(questions), store.NewReviewStore(st), nil

	default:
		b, err := bank.LoadFile(questionsFile)
		if err != nil {
			return nil, nil, err
		}
		return b, store.NewFileReviewStore(getEnv("STATE_FILE", "data/state.json")), nil
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/pendulab/pendulum-backend/internal/db"
	"github.com/pendulab/pendulum-backend/internal/logger"
	"github.com/pendulab/pendulum-backend/internal/repos"
	"github.com/pendulab/pendulum-backend/internal/services"
)

const seedSteps = 50

// Seeds one demo user and a few synthetic results. The series are cheap
// closed-form curves, not integrated pendulum dynamics; they only exist so
// the API has data to serve.
func main() {
	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	userRepo := repos.NewUserRepo(thePG, log)
	resultRepo := repos.NewResultRepo(thePG, log)
	userService := services.NewUserService(thePG, log, userRepo)
	resultService := services.NewResultService(thePG, log, resultRepo, nil)

	ctx := context.Background()
	log.Info("Seeding database...")

	address := "123 Seed Street"
	user, err := userService.CreateUser(ctx, services.CreateUserInput{
		Email:   "testuser@example.com",
		Name:    "Test User",
		Address: &address,
		Roles:   []string{"user"},
	})
	if err != nil {
		log.Error("Seed user failed", "error", err)
		os.Exit(1)
	}
	log.Info("Seed user created", "user_id", user.ID)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(2)
	for i := 0; i < 3; i++ {
		i := i
		g.Go(func() error {
			input := syntheticResult(fmt.Sprintf("Seed run %d", i+1))
			created, err := resultService.CreateResult(gctx, input)
			if err != nil {
				return fmt.Errorf("seed result %d: %w", i, err)
			}
			log.Info("Seed result created", "result_id", created.ID)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("Seeding failed", "error", err)
		os.Exit(1)
	}

	log.Info("Done seeding")
}

func syntheticResult(name string) services.CreateResultInput {
	theta1 := rand.Float64() * math.Pi
	theta2 := rand.Float64() * math.Pi
	theta3 := rand.Float64() * math.Pi

	time := make([]float64, seedSteps)
	theta1Series := make([]float64, seedSteps)
	theta2Series := make([]float64, seedSteps)
	theta3Series := make([]float64, seedSteps)
	for i := 0; i < seedSteps; i++ {
		t := float64(i) * 0.1
		time[i] = t
		theta1Series[i] = theta1 + 0.05*math.Sin(t)
		theta2Series[i] = theta2 + 0.05*math.Cos(t)
		theta3Series[i] = theta3 + 0.03*math.Sin(2*t)
	}

	toXY := func(series []float64) ([]float64, []float64) {
		x := make([]float64, len(series))
		y := make([]float64, len(series))
		for i, theta := range series {
			x[i] = math.Sin(theta)
			y[i] = -math.Cos(theta)
		}
		return x, y
	}
	x1, y1 := toXY(theta1Series)
	x2, y2 := toXY(theta2Series)
	x3, y3 := toXY(theta3Series)

	return services.CreateResultInput{
		Name:         &name,
		Theta1Init:   &theta1,
		Theta2Init:   &theta2,
		Theta3Init:   &theta3,
		Theta1Series: theta1Series,
		Theta2Series: theta2Series,
		Theta3Series: theta3Series,
		Time:         time,
		X1:           x1,
		Y1:           y1,
		X2:           x2,
		Y2:           y2,
		X3:           x3,
		Y3:           y3,
	}
}

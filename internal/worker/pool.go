package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"studyhub-backend/internal/events"
	"studyhub-backend/internal/logger"
	"studyhub-backend/internal/models"
	"studyhub-backend/internal/repository"
	"studyhub-backend/internal/services"
)

const AnswerQueue = "queue:doubt-answer"

// ApologyMessage is appended to a doubt thread when answer generation fails,
// so the thread stays self-describing instead of silently missing a reply.
const ApologyMessage = "I'm sorry — I couldn't generate an answer right now. Please try asking again."

// Pool answers doubt questions off the Redis queue. Jobs are enqueued only
// after the question row is durably written, so a worker never races the
// question it is answering.
type Pool struct {
	redis       *redis.Client
	gemini      *services.GeminiService
	doubtRepo   *repository.DoubtRepo
	bus         *events.Bus
	log         *logger.Logger
	workerCount int
	stopChan    chan struct{}
}

func NewPool(
	redisClient *redis.Client,
	gemini *services.GeminiService,
	doubtRepo *repository.DoubtRepo,
	bus *events.Bus,
	log *logger.Logger,
	workerCount int,
) *Pool {
	return &Pool{
		redis:       redisClient,
		gemini:      gemini,
		doubtRepo:   doubtRepo,
		bus:         bus,
		log:         log,
		workerCount: workerCount,
		stopChan:    make(chan struct{}),
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		go p.worker(i)
	}
	p.log.Info("doubt answer workers started", "count", p.workerCount)
}

func (p *Pool) Stop() {
	close(p.stopChan)
}

func (p *Pool) worker(id int) {
	for {
		select {
		case <-p.stopChan:
			p.log.Info("worker shutting down", "worker", id)
			return
		default:
		}

		// The pool owns this context, not any HTTP request: a client
		// navigating away does not cancel an answer in flight.
		ctx := context.Background()

		result, err := p.redis.BLPop(ctx, 30*time.Second, AnswerQueue).Result()
		if err != nil {
			continue // Timeout or error, retry
		}

		if len(result) < 2 {
			continue
		}

		var job models.AnswerJob
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			p.log.Error("failed to parse answer job", "worker", id, "error", err)
			continue
		}

		p.process(ctx, &job)
	}
}

func (p *Pool) process(ctx context.Context, job *models.AnswerJob) {
	answer, err := p.gemini.AnswerDoubt(ctx, job.Question, job.Context)
	if err != nil {
		p.log.Warn("answer generation failed", "doubt_id", job.DoubtID, "error", err)
		answer = ApologyMessage
	}

	msg := &models.DoubtMessage{
		DoubtID: job.DoubtID,
		Sender:  models.SenderAI,
		Content: answer,
	}
	if err := p.doubtRepo.AppendMessage(ctx, msg); err != nil {
		p.log.Error("failed to append answer message", "doubt_id", job.DoubtID, "error", err)
		return
	}

	solved := false
	if doubt, err := p.doubtRepo.GetByID(ctx, job.DoubtID, job.UserID); err == nil {
		solved = doubt.Solved
	}

	p.bus.Publish(ctx, job.UserID, events.DoubtUpdated, events.DoubtUpdatedPayload{
		DoubtID:    job.DoubtID,
		Solved:     solved,
		LastSender: models.SenderAI,
	})
}

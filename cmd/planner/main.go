package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/nao-dance/choreography/go-planner/internal/catalog"
	"github.com/nao-dance/choreography/go-planner/internal/logging"
	"github.com/nao-dance/choreography/go-planner/internal/motion"
	"github.com/nao-dance/choreography/go-planner/internal/orchestrator"
	"github.com/nao-dance/choreography/go-planner/internal/plan"
	"github.com/nao-dance/choreography/go-planner/internal/store"
)

// #region main
func main() {
	defaults := orchestrator.DefaultConfig()

	dbPath := flag.String("db", envOr("CHOREO_DB", "choreography.db"), "path to the choreography database")
	catalogPath := flag.String("catalog", "", "JSON move catalog (default: builtin NAO moves)")
	slot := flag.Float64("slot", defaults.TotalSlot, "exhibition maximum duration, seconds")
	alpha := flag.Float64("alpha", defaults.Alpha, "repetition penalty weight")
	tolerance := flag.Float64("tolerance", defaults.Tolerance, "accepted leftover time per segment, seconds")
	heuristic := flag.String("heuristic", string(defaults.Heuristic), "search heuristic: zero | remaining-time")
	nodeLimit := flag.Int("node-limit", defaults.NodeLimit, "per-segment expansion cap, 0 = unlimited")
	minMoves := flag.Int("min-moves", defaults.MinIntermediateMoves, "minimum intermediate moves across the choreography")
	shuffleSeed := flag.Int64("shuffle-seed", 0, "shuffle the mandatory pose order with this seed, 0 = keep order")
	execute := flag.Bool("execute", false, "execute the choreography on the robot via the motion bridge")
	audio := flag.String("audio", "Wii_Sports.mp3", "audio file started with --execute")
	bridgeAddr := flag.String("bridge", envOr("MOTION_ADDR", "localhost:50051"), "motion bridge gRPC address")
	flag.Parse()

	cat, err := loadCatalog(*catalogPath)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	poses := buildPoses(*shuffleSeed)

	cfg := orchestrator.Config{
		TotalSlot:            *slot,
		Alpha:                *alpha,
		Tolerance:            *tolerance,
		Heuristic:            plan.Heuristic(*heuristic),
		NodeLimit:            *nodeLimit,
		MinIntermediateMoves: *minMoves,
	}

	planner, err := orchestrator.New(cat, cfg)
	if err != nil {
		log.Fatalf("planner setup: %v", err)
	}

	fmt.Println("PLANNED CHOREOGRAPHY:")
	planStart := time.Now()
	ch, err := planner.Plan(poses)
	planElapsed := time.Since(planStart)
	if err != nil {
		log.Fatalf("planning failed: %v", err)
	}

	printChoreography(ch)
	printStatistics(ch, cfg, planElapsed)

	rec, err := persist(*dbPath, ch, cfg, cat.Moves(), poses)
	if err != nil {
		log.Printf("persist error: %v", err)
	} else {
		fmt.Printf("\nStored as %s\n", rec.ChoreoID)
	}

	if *execute {
		if err := run(ch, *bridgeAddr, *audio); err != nil {
			log.Fatalf("execution failed: %v", err)
		}
	}
}

// #endregion main

// #region inputs

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Builtin(), nil
	}
	return catalog.LoadFile(path)
}

// buildPoses assembles the checkpoint list: opening pose, mandatory
// checkpoints (optionally shuffled with a fixed seed), closing pose.
func buildPoses(shuffleSeed int64) []catalog.Pose {
	mandatory := catalog.BuiltinMandatoryPoses()
	if shuffleSeed != 0 {
		rng := rand.New(rand.NewSource(shuffleSeed))
		rng.Shuffle(len(mandatory), func(i, j int) {
			mandatory[i], mandatory[j] = mandatory[j], mandatory[i]
		})
	}

	poses := make([]catalog.Pose, 0, len(mandatory)+2)
	poses = append(poses, catalog.BuiltinStartPose())
	poses = append(poses, mandatory...)
	poses = append(poses, catalog.BuiltinFinalPose())
	return poses
}

// #endregion inputs

// #region printing

func printChoreography(ch *orchestrator.Choreography) {
	for _, seg := range ch.Segments {
		line := ""
		for i, m := range seg.Moves {
			if i > 0 {
				line += ", "
			}
			line += m
		}
		fmt.Printf("Step %d: \t%s\n", seg.Index, line)
	}

	fmt.Println("\nFULL SEQUENCE:")
	for _, e := range ch.Entries {
		marker := " "
		if e.Kind == orchestrator.EntryPose {
			marker = "*"
		}
		fmt.Printf("  %s %7.2fs  %s\n", marker, e.StartAt, e.ID)
	}
	fmt.Println("  (* = mandatory pose)")
}

func printStatistics(ch *orchestrator.Choreography, cfg orchestrator.Config, planElapsed time.Duration) {
	expanded := 0
	for _, seg := range ch.Segments {
		expanded += seg.Expanded
	}
	fmt.Printf("\nSTATISTICS:\n")
	fmt.Printf("  planning time:      %.3fs\n", planElapsed.Seconds())
	fmt.Printf("  states expanded:    %d\n", expanded)
	fmt.Printf("  total duration:     %.2fs of %.2fs slot\n", ch.TotalDuration, cfg.TotalSlot)
	fmt.Printf("  intermediate moves: %d\n", ch.MoveCount())
	fmt.Printf("  move usage:\n")
	for _, id := range sortedMoveIDs(ch.Counters) {
		fmt.Printf("    %-28s %d\n", id, ch.Counters[id])
	}
}

// #endregion printing

// #region persist

func persist(dbPath string, ch *orchestrator.Choreography, cfg orchestrator.Config, moves []catalog.Move, poses []catalog.Pose) (store.Record, error) {
	st, err := store.NewStore(dbPath)
	if err != nil {
		return store.Record{}, err
	}
	defer st.Close()

	rec, err := st.Commit(ch, cfg, moves, poses)
	if err != nil {
		return store.Record{}, err
	}

	for _, seg := range ch.Segments {
		movesJSON, _ := json.Marshal(logging.PlanRecord{
			Moves:    seg.Moves,
			Duration: seg.Duration,
			Cost:     seg.Cost,
			Expanded: seg.Expanded,
		})
		err := logging.LogDecision(st.DB(), logging.SegmentDecision{
			ChoreoID:  rec.ChoreoID,
			SegIndex:  seg.Index,
			FromPose:  seg.FromPose,
			ToPose:    seg.ToPose,
			Budget:    seg.Budget,
			Decision:  "planned",
			MovesJSON: string(movesJSON),
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			log.Printf("logging error: %v", err)
		}
	}
	return rec, nil
}

// #endregion persist

// #region execute

func run(ch *orchestrator.Choreography, bridgeAddr, audio string) error {
	client, err := motion.NewClient(bridgeAddr)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := context.Background()
	if err := client.Health(ctx); err != nil {
		return err
	}

	fmt.Println("\nDANCE EXEC:")
	if audio != "" {
		if err := client.PlayAudio(ctx, audio); err != nil {
			log.Printf("[EXEC] audio: %v", err)
		}
	}

	start := time.Now()
	for _, e := range ch.Entries {
		fmt.Printf("Executing: %s... ", e.ID)
		res, err := client.ExecuteMove(ctx, e.ID)
		if err != nil {
			return err
		}
		fmt.Printf("done in %.2f seconds.\n", res.ElapsedMS/1000)
	}
	fmt.Printf("Length of the entire choreography: %.2f seconds.\n", time.Since(start).Seconds())
	return nil
}

// #endregion execute

// #region helpers
func sortedMoveIDs(counters plan.Counters) []string {
	ids := make([]string, 0, len(counters))
	for id := range counters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers

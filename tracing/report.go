package tracing

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sarchlab/monstercatch/timing"
)

// SessionSummary condenses one traced session.
type SessionSummary struct {
	ID       string
	Start    timing.VTimeInMs
	End      timing.VTimeInMs
	Outcome  string
	Score    int
	Spawned  int
	Caught   int
	Expired  int
	Cleared  int
	AvgCatch timing.VTimeInMs
}

// Summarize reads every session in the trace, in start order.
func Summarize(ctx context.Context, r TraceReader) ([]SessionSummary, error) {
	sessions, err := r.ListTasks(ctx, TaskQuery{Kind: KindSession})
	if err != nil {
		return nil, err
	}

	summaries := make([]SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		entities, err := r.ListTasks(ctx,
			TaskQuery{Kind: KindEntity, ParentID: s.ID})
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, summarize(s, entities))
	}

	return summaries, nil
}

func summarize(session Task, entities []Task) SessionSummary {
	sum := SessionSummary{
		ID:      session.ID,
		Start:   session.StartTime,
		End:     session.EndTime,
		Outcome: session.Result,
		Score:   session.Value,
		Spawned: len(entities),
	}

	var catchTime timing.VTimeInMs

	for _, e := range entities {
		switch e.Result {
		case "caught":
			sum.Caught++
			catchTime += e.Duration()
		case "expired":
			sum.Expired++
		case "cleared":
			sum.Cleared++
		}
	}

	if sum.Caught > 0 {
		sum.AvgCatch = catchTime / timing.VTimeInMs(sum.Caught)
	}

	return sum
}

// PrintSummaries writes one aligned row per session.
func PrintSummaries(w io.Writer, summaries []SessionSummary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "SESSION\tOUTCOME\tSCORE\tSPAWNED\tCAUGHT\tESCAPED\tAVG CATCH\tLENGTH")

	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%v\t%v\n",
			s.ID, s.Outcome, s.Score, s.Spawned, s.Caught, s.Expired,
			s.AvgCatch.Duration(), (s.End - s.Start).Duration())
	}

	return tw.Flush()
}

package arena

import (
	"context"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"
)

func showResults[M comparable](
	ctx context.Context,
	logger zerolog.Logger,
	gameResults <-chan gameResult[M],
) (GameStatistics, error) {
	var games = 0
	var wins, losses, draws int
	var st GameStatistics
	for gameResult := range gameResults {
		games++
		logger.Info().
			Int("game", gameResult.gameInfo.gameNumber).
			Str("result", gameResultString(gameResult.result)).
			Str("comment", gameResult.comment).
			Msg("finished game")
		if gameResult.result == gameResultDraw {
			draws++
		} else if gameResult.result == gameResultFirstWins && gameResult.gameInfo.engineAIsFirst ||
			gameResult.result == gameResultSecondWins && !gameResult.gameInfo.engineAIsFirst {
			wins++
		} else {
			losses++
		}
		st = computeStat(wins, losses, draws)
		logger.Info().
			Int("wins", wins).
			Int("losses", losses).
			Int("draws", draws).
			Int("games", games).
			Float64("score", st.WinningFraction).
			Float64("elo", st.EloDifference).
			Float64("eloMargin", st.EloMargin).
			Float64("los", st.LOS).
			Msg("score")
	}
	return st, nil
}

type GameStatistics struct {
	Wins, Losses, Draws int
	WinningFraction     float64
	EloDifference       float64
	// EloMargin is the half width of the 95% confidence interval of EloDifference.
	EloMargin float64
	LOS       float64
}

// https://www.chessprogramming.org/Match_Statistics
func computeStat(wins, losses, draws int) GameStatistics {
	var games = wins + losses + draws
	if games == 0 {
		return GameStatistics{}
	}
	var scores = make([]float64, 0, games)
	for i := 0; i < wins; i++ {
		scores = append(scores, 1)
	}
	for i := 0; i < losses; i++ {
		scores = append(scores, 0)
	}
	for i := 0; i < draws; i++ {
		scores = append(scores, 0.5)
	}
	var mean, std = stat.MeanStdDev(scores, nil)
	var los = 0.5
	if wins+losses != 0 {
		los = 0.5 + 0.5*math.Erf(float64(wins-losses)/math.Sqrt(2*float64(wins+losses)))
	}
	var margin float64
	if mean <= 0 || mean >= 1 {
		margin = math.Inf(1)
	} else if games > 1 {
		var stdErr = std / math.Sqrt(float64(games))
		var lo = clampFraction(mean - 1.96*stdErr)
		var hi = clampFraction(mean + 1.96*stdErr)
		margin = (eloDifference(hi) - eloDifference(lo)) / 2
	}
	return GameStatistics{
		Wins:            wins,
		Losses:          losses,
		Draws:           draws,
		WinningFraction: mean,
		EloDifference:   eloDifference(mean),
		EloMargin:       margin,
		LOS:             los,
	}
}

// clampFraction keeps a winning fraction inside (0,1) where the Elo formula is finite.
func clampFraction(x float64) float64 {
	const eps = 1e-3
	return math.Max(eps, math.Min(1-eps, x))
}

func eloDifference(winningFraction float64) float64 {
	return -math.Log(1/winningFraction-1) * 400 / math.Ln10
}

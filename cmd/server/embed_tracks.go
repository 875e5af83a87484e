package main

import (
	"fmt"
	"os"

	"github.com/fadilmartias/nexo-carreira/internal/config"
	"github.com/fadilmartias/nexo-carreira/internal/model"
	"github.com/fadilmartias/nexo-carreira/internal/repository"
	"github.com/fadilmartias/nexo-carreira/internal/service"
	"github.com/fadilmartias/nexo-carreira/internal/usecase"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var tracksFile string

var embedTracksCmd = &cobra.Command{
	Use:   "embed-tracks",
	Short: "Embed career tracks from a YAML file and store them",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		tracks, err := loadCareerTracks(tracksFile)
		if err != nil {
			return err
		}

		db, err := ConnectDB()
		if err != nil {
			return err
		}
		if err := Migrate(db, true); err != nil {
			return err
		}
		gemini, err := service.NewGeminiService(ctx, config.LoadGeminiConfig(), appLog)
		if err != nil {
			return err
		}

		uc := usecase.NewAssessmentUsecase(repository.NewAssessmentRepository(db), gemini, nil, nil, appLog).
			WithCareerTracks(repository.NewCareerTrackRepository(db), gemini)
		n, err := uc.EmbedCareerTracks(ctx, tracks)
		if err != nil {
			return fmt.Errorf("embedded %d of %d tracks: %w", n, len(tracks), err)
		}
		appLog.Info("Career tracks embedded", "count", n, "file", tracksFile)
		return nil
	},
}

func init() {
	embedTracksCmd.Flags().StringVarP(&tracksFile, "file", "f", "configs/career_tracks.yaml", "YAML file with career tracks")
}

type careerTrackFile struct {
	Tracks []model.CareerTrack `yaml:"tracks"`
}

func loadCareerTracks(path string) ([]model.CareerTrack, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var f careerTrackFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(f.Tracks) == 0 {
		return nil, fmt.Errorf("%s: no tracks defined", path)
	}
	return f.Tracks, nil
}

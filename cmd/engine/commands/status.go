package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/lightsnake/engine/rules"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var apiAddr = "http://localhost:3005"

func init() {
	statusCmd.Flags().StringVar(&apiAddr, "api-addr", apiAddr, "address of the status api")
	watchCmd.Flags().StringVar(&apiAddr, "api-addr", apiAddr, "address of the status api")
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "gets the status of a running arena",
	RunE: func(*cobra.Command, []string) error {
		st, err := getStatus()
		if err != nil {
			return err
		}
		spew.Dump(st)
		return nil
	},
}

type status struct {
	rules.Snapshot
	Players map[string]int `json:"players"`
}

func getStatus() (*status, error) {
	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	resp, err := client.Get(fmt.Sprintf("%s/status", apiAddr))
	if err != nil {
		return nil, errors.Wrap(err, "error while getting status")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read response body")
	}

	st := &status{}
	err = json.Unmarshal(data, st)
	if err != nil {
		log.WithFields(log.Fields{
			"resp": string(data),
		}).Info("unable to unmarshal status response")
		return nil, errors.Wrap(err, "unable to unmarshal status response")
	}
	return st, nil
}

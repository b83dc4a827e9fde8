// cmd/dealctl/main.go
//
// dealctl is an operator CLI for poking a running deal server: create a
// table, start it, submit moves and inspect a player's view. Useful for
// smoke-testing a deployment without a real client.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/alecthomas/kong"
	_ "github.com/joho/godotenv/autoload"
)

var CLI struct {
	Server string `short:"s" default:"http://localhost:8080" help:"Base URL of the deal server"`

	Create CreateCmd `cmd:"" help:"Create a game and print per-player tokens"`
	Start  StartCmd  `cmd:"" help:"Deal opening hands and start the game"`
	Move   MoveCmd   `cmd:"" help:"Submit a move"`
	State  StateCmd  `cmd:"" help:"Print the requesting player's view"`
}

type CreateCmd struct {
	Players []string `arg:"" help:"Player IDs, in seat order"`
}

func (c *CreateCmd) Run() error {
	return post("/game/create", "", map[string]interface{}{"players": c.Players})
}

type StartCmd struct {
	Game  string `arg:"" help:"Game ID"`
	Token string `short:"t" required:"" help:"Session token of any player"`
}

func (c *StartCmd) Run() error {
	return post("/game/start", c.Token, map[string]interface{}{"game_id": c.Game})
}

type MoveCmd struct {
	Game   string `arg:"" help:"Game ID"`
	Token  string `short:"t" required:"" help:"Session token of the acting player"`
	Action string `arg:"" help:"BeginTurn, PlayCard or EndTurn"`
	Card   string `short:"c" help:"Card ID (PlayCard)"`
	Place  string `short:"p" help:"bank, property or action (PlayCard)"`
	Color  string `help:"Declared color for wildcards"`
}

func (c *MoveCmd) Run() error {
	return post("/game/move", c.Token, map[string]interface{}{
		"game_id":    c.Game,
		"actionType": c.Action,
		"cardId":     c.Card,
		"placeAs":    c.Place,
		"color":      c.Color,
	})
}

type StateCmd struct {
	Game  string `arg:"" help:"Game ID"`
	Token string `short:"t" required:"" help:"Session token of the requesting player"`
}

func (c *StateCmd) Run() error {
	req, err := http.NewRequest(http.MethodGet, CLI.Server+"/game/state?game_id="+url.QueryEscape(c.Game), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	return do(req)
}

func post(path, token string, body map[string]interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, CLI.Server+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return do(req)
}

func do(req *http.Request) error {
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	var pretty bytes.Buffer
	if json.Indent(&pretty, raw, "", "  ") == nil {
		raw = pretty.Bytes()
	}
	fmt.Println(string(raw))
	if resp.StatusCode >= 400 {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return nil
}

func main() {
	ctx := kong.Parse(&CLI)
	if err := ctx.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		ctx.Exit(1)
	}
}

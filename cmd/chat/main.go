// File: cmd/chat/main.go
//
// Command chat is a terminal front end for the newsbot API.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/iyunix/go-newsbot/internal/client"
	"github.com/iyunix/go-newsbot/internal/services"
	"github.com/iyunix/go-newsbot/internal/session"
)

const help = `commands:
  search <keyword>            fetch and summarize news
  <text> | ask <text>         ask about the selected search
  history                     list searches from this run
  select <n> | delete <n>     pick or drop a history entry
  email <name> <phone> <email>  mail the selected summary
  login <id> <password>       sign in
  register <id> <name> <email> <phone> <password>
  me | logout | help | quit`

func main() {
	server := flag.String("server", "http://localhost:8080/api", "API base URL")
	flag.Parse()

	logger := services.NewSlogLogger("newsbot_chat", os.Stderr, services.ParseLevel(os.Getenv("LOG_LEVEL")), false)

	api, err := client.New(*server, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	orch := session.New(api, session.Options{
		Logger: logger,
		OnPersistError: func(e session.Entry, err error) {
			fmt.Fprintf(os.Stderr, "\n(저장 실패: %s - %v)\n", e.Keyword, err)
		},
	})
	defer orch.Wait()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if u, err := api.Me(ctx); err == nil && u != nil {
		orch.SetUser(u)
		fmt.Printf("logged in as %s\n", u.Username)
	}

	r := &repl{api: api, orch: orch}
	fmt.Println(help)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		if !r.handle(ctx, strings.TrimSpace(scanner.Text())) {
			return
		}
	}
}

type repl struct {
	api  *client.Client
	orch *session.Orchestrator
}

// handle runs one input line and reports whether to keep going.
func (r *repl) handle(ctx context.Context, line string) bool {
	if line == "" {
		return true
	}
	cmd, rest, _ := strings.Cut(line, " ")
	args := strings.Fields(rest)

	switch cmd {
	case "quit", "exit":
		return false
	case "help":
		fmt.Println(help)
	case "search":
		entry, err := r.orch.Search(ctx, rest)
		if err != nil {
			printErr(err)
			return true
		}
		for i, n := range entry.News {
			fmt.Printf("[%d] %s (%s, %s)\n", i+1, n.Title, n.Source, n.PublishedAt)
		}
		fmt.Printf("\n%s\n", entry.Summary)
	case "ask":
		r.ask(ctx, rest)
	case "history":
		for i, e := range r.orch.State().History.List() {
			mark := " "
			if e.ID == r.orch.State().Selected {
				mark = "*"
			}
			fmt.Printf("%s%d. %s (%s, %d turns)\n", mark, i+1, e.Keyword, e.CreatedAt.Format("2006-01-02 15:04"), len(e.Chat))
		}
	case "select", "delete":
		entry, ok := r.entryAt(args)
		if !ok {
			fmt.Println("no such entry")
			return true
		}
		if cmd == "delete" {
			r.orch.Delete(entry.ID)
			return true
		}
		if err := r.orch.Select(entry.ID); err != nil {
			printErr(err)
			return true
		}
		fmt.Printf("%s\n\n%s\n", entry.Keyword, entry.Summary)
	case "email":
		if len(args) != 3 {
			fmt.Println("usage: email <name> <phone> <email>")
			return true
		}
		id, err := r.orch.SendEmail(ctx, session.Contact{Name: args[0], Phone: args[1], Email: args[2]})
		if err != nil {
			printErr(err)
			return true
		}
		fmt.Printf("sent (%s)\n", id)
	case "login":
		if len(args) != 2 {
			fmt.Println("usage: login <id> <password>")
			return true
		}
		u, err := r.api.Login(ctx, args[0], args[1])
		if err != nil {
			printErr(err)
			return true
		}
		r.orch.SetUser(u)
		fmt.Printf("logged in as %s\n", u.Username)
	case "register":
		if len(args) != 5 {
			fmt.Println("usage: register <id> <name> <email> <phone> <password>")
			return true
		}
		u, err := r.api.Register(ctx, client.RegisterRequest{
			UserID: args[0], Username: args[1], Email: args[2], Phone: args[3], Password: args[4],
		})
		if err != nil {
			printErr(err)
			return true
		}
		fmt.Printf("registered %s\n", u.UserID)
	case "me":
		u, err := r.api.Me(ctx)
		switch {
		case err != nil:
			printErr(err)
		case u == nil:
			fmt.Println("not logged in")
		default:
			fmt.Printf("%s (%s)\n", u.Username, u.UserID)
		}
	case "logout":
		if err := r.api.Logout(ctx); err != nil {
			printErr(err)
			return true
		}
		r.orch.SetUser(nil)
	default:
		r.ask(ctx, line)
	}
	return true
}

func (r *repl) ask(ctx context.Context, message string) {
	reply, err := r.orch.Chat(ctx, message)
	if err != nil {
		printErr(err)
		return
	}
	fmt.Println(reply)
}

func (r *repl) entryAt(args []string) (session.Entry, bool) {
	if len(args) != 1 {
		return session.Entry{}, false
	}
	n, err := strconv.Atoi(args[0])
	list := r.orch.State().History.List()
	if err != nil || n < 1 || n > len(list) {
		return session.Entry{}, false
	}
	return list[n-1], true
}

func printErr(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kingrain94/support-desk-api/internal/domain"
)

// Small command line client that prints the live ticket stream.
func main() {
	server := flag.String("server", "ws://localhost:10000", "API base URL")
	useQuery := flag.Bool("query", false, "send the token as ?token= like a browser would")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("Usage: websocket_client [-server ws://host:port] [-query] <JWT_TOKEN>")
	}
	token := flag.Arg(0)

	endpoint, err := url.Parse(*server + "/api/ws/tickets")
	if err != nil {
		log.Fatal("Invalid server URL:", err)
	}

	header := http.Header{}
	if *useQuery {
		endpoint.RawQuery = url.Values{"token": {token}}.Encode()
	} else {
		header.Set("Authorization", "Bearer "+token)
	}

	fmt.Printf("Connecting to %s://%s%s...\n", endpoint.Scheme, endpoint.Host, endpoint.Path)
	conn, _, err := websocket.DefaultDialer.Dial(endpoint.String(), header)
	if err != nil {
		log.Fatal("Failed to connect:", err)
	}
	defer conn.Close()

	fmt.Println("Connected! Waiting for ticket events...")
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			var event domain.TicketEvent
			if err := json.Unmarshal(message, &event); err != nil {
				fmt.Printf("%s\n", message)
				continue
			}
			fmt.Printf("%s %s [%s] %s (%s)\n", event.Timestamp.Format(time.RFC3339), event.Number, event.Status, event.Subject, event.Type)
		}
	}()

	select {
	case <-done:
		return
	case <-interrupt:
		fmt.Println("\nDisconnecting...")

		err := conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		if err != nil {
			log.Println("Write close:", err)
			return
		}

		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/gorilla/websocket"
	"github.com/pulumi/pulumi/sdk/v3/go/common/util/contract"
	"github.com/tidwall/gjson"

	"github.com/microsoft/botframework-composer-lsp/lsp"
	"github.com/microsoft/botframework-composer-lsp/rpc"
	"github.com/microsoft/botframework-composer-lsp/server"
)

var (
	addr       = flag.String("addr", envOr("COMPOSERLSP_ADDR", ":5002"), "listen address for the WebSocket endpoint")
	stdio      = flag.Bool("stdio", false, "serve a single session over stdin/stdout instead of listening")
	logFile    = flag.String("logfile", os.Getenv("COMPOSERLSP_LOGFILE"), "write logs to this file instead of stderr")
	logLevel   = flag.String("loglevel", envOr("COMPOSERLSP_LOGLEVEL", "info"), "minimum log level (debug, info, warn, error)")
	memoryFile = flag.String("memory-file", os.Getenv("COMPOSERLSP_MEMORY_FILE"), "JSON file mapping project ids to memory variable paths")
)

func main() {
	defer panicHandler()
	flag.Parse()

	logger := getLogger(*logFile, *logLevel)
	memory := getMemoryResolver(*memoryFile)

	if *stdio {
		// single-session mode for editors that spawn the server directly;
		// messages use Content-Length framing instead of WebSocket frames
		runSession(context.Background(), logger, memory, rpc.NewHeaderStream(os.Stdin, os.Stdout))
		return
	}

	upgrader := websocket.Upgrader{
		// the hosting app proxies the editor's connection, so the usual
		// same-origin check does not apply here
		CheckOrigin: func(*http.Request) bool { return true },
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		wsConn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}
		// each request already has its own goroutine; the request context
		// dies with the handler, so the session runs on its own
		serveSession(context.Background(), logger, memory, wsConn)
	})

	logger.Info("listening", "addr", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// serveSession runs one LSP session over one WebSocket connection.
func serveSession(ctx context.Context, logger *slog.Logger, memory server.MemoryResolver, wsConn *websocket.Conn) {
	defer panicHandler()
	defer wsConn.Close()

	logger = logger.With("remote", wsConn.RemoteAddr().String())
	runSession(ctx, logger, memory, rpc.NewWebSocketStream(wsConn))
}

// runSession drives one session to completion on the given stream. Each
// session gets its own server, so document and scope state never crosses
// editor instances.
func runSession(ctx context.Context, logger *slog.Logger, memory server.MemoryResolver, stream rpc.Stream) {
	logger.Info("session started")

	conn := rpc.NewConn(stream, logger)
	client := lsp.ClientDispatcher(conn)
	srv := server.New(logger, client, memory)
	defer func() {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("error shutting down server", "error", err)
		}
	}()
	ctx = lsp.WithClient(ctx, client)
	conn.Run(ctx, lsp.ServerHandler(srv, rpc.MethodNotFound))
	logger.Info("session ended")
}

// getMemoryResolver loads the project memory snapshot file, a JSON object
// of project id to variable path arrays:
//
//	{"p1": ["user.name", "user.age"], "p2": []}
//
// Without a file the user-variables scope stays inert.
func getMemoryResolver(filename string) server.MemoryResolver {
	if filename == "" {
		return nil
	}
	data, err := os.ReadFile(filename)
	contract.AssertNoErrorf(err, "failed to read memory file: %s", filename)
	contract.Assertf(gjson.ValidBytes(data), "memory file is not valid JSON: %s", filename)

	byProject := make(map[string][]string)
	gjson.ParseBytes(data).ForEach(func(key, value gjson.Result) bool {
		var vars []string
		value.ForEach(func(_, v gjson.Result) bool {
			vars = append(vars, v.String())
			return true
		})
		byProject[key.String()] = vars
		return true
	})
	return func(projectID string) []string {
		return byProject[projectID]
	}
}

func getLogger(filename, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	out := os.Stderr
	if filename != "" {
		logfile, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
		contract.AssertNoErrorf(err, "failed to open log file: %s", filename)
		out = logfile
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: lvl}))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func panicHandler() {
	if panicPayload := recover(); panicPayload != nil {
		stack := string(debug.Stack())
		fmt.Fprintln(os.Stderr, "================================================================================")
		fmt.Fprintln(os.Stderr, "composer-language-server encountered a fatal error. This is a bug!")
		fmt.Fprintln(os.Stderr, "Please provide all of the below text in your report.")
		fmt.Fprintln(os.Stderr, "================================================================================")
		fmt.Fprintf(os.Stderr, "Go Version:           %s\n", runtime.Version())
		fmt.Fprintf(os.Stderr, "Go Compiler:          %s\n", runtime.Compiler)
		fmt.Fprintf(os.Stderr, "Architecture:         %s\n", runtime.GOARCH)
		fmt.Fprintf(os.Stderr, "Operating System:     %s\n", runtime.GOOS)
		fmt.Fprintf(os.Stderr, "Panic:                %s\n\n", panicPayload)
		fmt.Fprintln(os.Stderr, stack)
		os.Exit(1)
	}
}

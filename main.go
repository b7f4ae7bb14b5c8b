package main

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/getsentry/sentry-go"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/fusex/medevac-api/api"
	"github.com/fusex/medevac-api/external/filestore"
	"github.com/fusex/medevac-api/permission"
	"github.com/fusex/medevac-api/store"
	"github.com/fusex/medevac-api/store/memory"
	"github.com/fusex/medevac-api/tracing"
	"github.com/fusex/medevac-api/utils"
	"github.com/fusex/medevac-api/workflow"
)

const serviceName = "medevac-api"

var (
	server *api.Server
	ormDB  *gorm.DB
)

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("medevac")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("store.driver", "postgres")
	viper.SetDefault("i18n.dir", "./i18n")
	viper.SetDefault("files.dir", "./arquivos")
}

func openStore() (store.EvacuationCore, error) {
	switch driver := viper.GetString("store.driver"); driver {
	case "postgres":
		var err error
		ormDB, err = gorm.Open("postgres", viper.GetString("orm.conn"))
		if err != nil {
			return nil, err
		}
		return store.NewEvacuationStore(ormDB), nil
	case "memory":
		s := memory.New()
		if seed := viper.GetString("store.seed"); seed != "" {
			if err := s.LoadSeed(seed); err != nil {
				return nil, err
			}
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

func main() {
	var configFile string

	initialCtx, cancelInitialization := context.WithCancel(context.Background())

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Server is preparing to shutdown")

		if initialCtx != nil && cancelInitialization != nil {
			log.Info("Cancelling initialization")
			cancelInitialization()
			<-initialCtx.Done()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if server != nil {
			log.Info("Shutdown api server")
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Server Shutdown:", err)
			}
		}

		if ormDB != nil {
			log.Info("Shutting down db store")
			if err := ormDB.Close(); err != nil {
				log.Error(err)
			}
		}

		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}()

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	if viper.GetBool("tracing.enabled") {
		if err := tracing.Init(serviceName, viper.GetString("server.version"), viper.GetString("tracing.output")); err != nil {
			log.Panic(err)
		}
		log.WithField("prefix", "init").Info("Initialized tracing")
	}

	utils.InitI18NBundle()
	log.WithField("prefix", "init").Info("Loaded role and status labels")

	// Load JWT public key of the identity provider
	jwtPublicByte, err := ioutil.ReadFile(viper.GetString("jwt.pubkeyfile"))
	if err != nil {
		log.Panic(err)
	}
	jwtPublicKey, err := jwt.ParseRSAPublicKeyFromPEM(jwtPublicByte)
	if err != nil {
		log.Panic(err)
	}
	log.WithField("prefix", "init").Info("Loaded identity provider jwt key")

	core, err := openStore()
	if err != nil {
		log.Panic(err)
	}
	log.WithField("prefix", "init").Info("Opened ", viper.GetString("store.driver"), " store")

	files := filestore.New(viper.GetString("files.dir"))
	authority := permission.NewAuthority(permission.DefaultGrants())
	requestTransitions := workflow.RequestTransitions()

	// Init http server
	server = api.NewServer(
		core,
		workflow.NewRequestOrchestrator(core, authority, requestTransitions, files),
		workflow.NewResponseOrchestrator(core, authority, requestTransitions, workflow.ResponseTransitions(), files),
		authority,
		requestTransitions,
		jwtPublicKey)
	log.WithField("prefix", "init").Info("Initialized http server")

	// Remove initial context
	initialCtx = nil
	cancelInitialization = nil

	log.Fatal(server.Run(":" + viper.GetString("server.port")))
}

package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-group-chat/config"
	"github.com/oksasatya/go-ddd-group-chat/internal/application"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/repository"
	pginfra "github.com/oksasatya/go-ddd-group-chat/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-group-chat/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-ddd-group-chat/internal/interface/http"
	"github.com/oksasatya/go-ddd-group-chat/internal/interface/ws"
	"github.com/oksasatya/go-ddd-group-chat/internal/realtime"
	"github.com/oksasatya/go-ddd-group-chat/pkg/helpers"
)

// Infra holds the external clients built in main. Redis, ES and the
// publisher are optional and may be nil.
type Infra struct {
	Config    *config.Config
	Logger    *logrus.Logger
	PGPool    *pgxpool.Pool
	Redis     *redis.Client
	ES        *elasticsearch.Client
	Publisher *helpers.RabbitPublisher
	Sessions  *helpers.JWTManager
}

// Repositories groups the storage ports so tests can swap in mocks.
type Repositories struct {
	Users    repository.UserRepository
	Groups   repository.GroupRepository
	Messages repository.MessageRepository
}

// Container is the application object graph shared by the router modules.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	Redis  *redis.Client

	Repos Repositories
	Index *search.MessageIndex

	Register     *application.Register
	Login        *application.Login
	ValidateUser *application.ValidateUser

	CreateGroup   *application.CreateGroup
	ListGroups    *application.GetUserGroupList
	AddMember     *application.AddUserToGroup
	RemoveMember  *application.RemoveUserFromGroup
	SendMessage   *application.SendMessage
	EditMessage   *application.EditMessage
	DeleteMessage *application.DeleteMessage
	ListMessages  *application.GetGroupMessageList
	Search        *application.SearchGroupMessages

	Registry   *realtime.Registry
	Rooms      *realtime.Rooms
	Dispatcher *realtime.Dispatcher

	AuthHandler    *handlers.AuthHandler
	GroupHandler   *handlers.GroupHandler
	MessageHandler *handlers.MessageHandler
	Gateway        *ws.Gateway
}

// New wires postgres repositories from infra.PGPool.
func New(infra Infra) *Container {
	return NewWithRepositories(infra, Repositories{
		Users:    pginfra.NewUserRepository(infra.PGPool),
		Groups:   pginfra.NewGroupRepository(infra.PGPool),
		Messages: pginfra.NewMessageRepository(infra.PGPool),
	})
}

func NewWithRepositories(infra Infra, repos Repositories) *Container {
	cfg, logger := infra.Config, infra.Logger
	hasher := helpers.Bcrypt{}
	index := search.NewMessageIndex(infra.ES, cfg.ESMessagesIndex)

	c := &Container{Config: cfg, Logger: logger, Redis: infra.Redis, Repos: repos, Index: index}

	c.Register = application.NewRegister(repos.Users, hasher, infra.Sessions, logger)
	c.Login = application.NewLogin(repos.Users, hasher, infra.Sessions, logger)
	c.ValidateUser = application.NewValidateUser(repos.Users, infra.Sessions, logger)

	c.CreateGroup = application.NewCreateGroup(repos.Users, repos.Groups, logger)
	c.ListGroups = application.NewGetUserGroupList(repos.Users, repos.Groups, logger)
	c.AddMember = application.NewAddUserToGroup(repos.Users, repos.Groups, logger)
	c.RemoveMember = application.NewRemoveUserFromGroup(repos.Users, repos.Groups, logger)
	c.SendMessage = application.NewSendMessage(repos.Users, repos.Groups, repos.Messages, logger)
	c.EditMessage = application.NewEditMessage(repos.Users, repos.Messages, logger)
	c.DeleteMessage = application.NewDeleteMessage(repos.Users, repos.Groups, repos.Messages, logger)
	c.ListMessages = application.NewGetGroupMessageList(repos.Users, repos.Groups, repos.Messages, logger)
	c.Search = application.NewSearchGroupMessages(repos.Users, repos.Groups, index, logger)

	// a nil *RabbitPublisher must not become a non-nil interface
	var publisher realtime.Publisher
	if infra.Publisher != nil {
		publisher = infra.Publisher
	}
	c.Registry = realtime.NewRegistry(c.ValidateUser, logger)
	c.Rooms = realtime.NewRooms(logger)
	c.Dispatcher = realtime.NewDispatcher(c.Registry, c.Rooms, publisher, logger)

	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)
	c.AuthHandler = handlers.NewAuthHandler(c.Register, c.Login, cookies, cfg.SessionTTL, logger)
	c.GroupHandler = handlers.NewGroupHandler(c.CreateGroup, c.ListGroups, c.AddMember, c.RemoveMember, c.Dispatcher)
	c.MessageHandler = handlers.NewMessageHandler(handlers.MessageUseCases{
		Send:   c.SendMessage,
		Edit:   c.EditMessage,
		Delete: c.DeleteMessage,
		List:   c.ListMessages,
		Search: c.Search,
	}, c.Dispatcher)
	c.Gateway = ws.NewGateway(c.Registry, c.Rooms, c.Dispatcher, ws.MessageUseCases{
		Send:   c.SendMessage,
		Edit:   c.EditMessage,
		Delete: c.DeleteMessage,
	}, cfg.WSOrigins(), logger)
	return c
}

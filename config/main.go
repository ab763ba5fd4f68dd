package config

import (
	"fmt"
	"strconv"

	db "github.com/JuanDiegoVivesCriollo/flores-checkout-backend/db"
	izipay "github.com/JuanDiegoVivesCriollo/flores-checkout-backend/izipay"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

type Configuration struct {
	JWTSecret   string `env:"JWT_SECRET,required"`
	Port        int    `env:"PORT,default=3001"`
	Timeout     int    `env:"TIMEOUT,default=15"`
	DB          db.Storage
	SQL         database
	AwsSMTP     awsSMTP
	AwsS3       awsS3
	Izipay      izipayConf
	Accounts    accountsConf
	Mail        mail
	Environment string `env:"ENVIRONMENT,default=development"`
	AppName     string `env:"APP_NAME,default=flores-checkout"`
	BaseURL     string `env:"BASE_URL,default=http://localhost:3001"`
}

type database struct {
	URL            string `env:"DATA_BASE_URL,required"`
	Name           string `env:"DATA_BASE_NAME,required"`
	User           string `env:"DATA_BASE_USER,required"`
	Port           int    `env:"DATA_BASE_PORT,default=3306"`
	Password       string `env:"DATA_BASE_PASSWORD,required"`
	OpenConnection int    `env:"DATA_BASE_MAX_OPEN_CONNECTION,default=5"`
}

type awsSMTP struct {
	SMTPHost     string `env:"SMTP_HOST,required"`
	SMTPPort     int    `env:"SMTP_PORT,required"`
	SMTPUser     string `env:"SMTP_USER,required"`
	SMTPPassword string `env:"SMTP_PASSWORD,required"`
}

type izipayConf struct {
	BaseURL       string `env:"IZIPAY_BASEURL,default=https://api.micuentaweb.pe"`
	JSBaseURL     string `env:"IZIPAY_JS_BASEURL,default=https://static.micuentaweb.pe"`
	Username      string `env:"IZIPAY_USERNAME"`
	Password      string `env:"IZIPAY_PASSWORD"`
	PublicKey     string `env:"IZIPAY_PUBLIC_KEY"`
	HMACSHA256Key string `env:"IZIPAY_HMAC_SHA256_KEY"`
	Mode          string `env:"IZIPAY_MODE,default=embedded"`
	RedirectURL   string `env:"IZIPAY_REDIRECT_URL"`
	ScriptTimeout int    `env:"IZIPAY_SCRIPT_TIMEOUT,default=15"`
	IPNPath       string `env:"IZIPAY_IPN_PATH,default=/payment/izipay/ipn"`
	Timeout       int    `env:"IZIPAY_TIMEOUT,default=30"`
}

type accountsConf struct {
	BaseURL   string `env:"ACCOUNTS_BASEURL"`
	LoginPath string `env:"ACCOUNTS_LOGIN_PATH,default=/auth/login"`
	Timeout   int    `env:"ACCOUNTS_TIMEOUT,default=10"`
}

type awsS3 struct {
	S3Region      string `env:"S3_REGION,required"`
	S3Bucket      string `env:"S3_BUCKET,required"`
	S3Url         string `env:"S3_URL,required"`
	S3PathReceipt string `env:"S3_PATH_RECEIPT,default=receipt"`
}

type mail struct {
	PaymentSuccess mailPaymentSuccess
	NameFrom       string `env:"MAIL_NAME_FROM"`
	EmailFrom      string `env:"MAIL_EMAIL_FROM"`
	Folder         string `env:"MAIL_FOLDER"`
	Path           string `env:"MAIL_PATH"`
}

type mailPaymentSuccess struct {
	Subject  string `env:"MAIL_PAYMENT_SUCCESS_SUBJECT"`
	Template string `env:"MAIL_PAYMENT_SUCCESS_TEMPLATE"`
	FileName string `env:"MAIL_PAYMENT_SUCCESS_FILENAME"`
}

type AppContext struct {
	Config  Configuration
	SQLConn *sqlx.DB
	DB      db.Storage
	AwsSMTP *gomail.Dialer
	AwsS3   *session.Session
	Izipay  *izipay.Client
}

func CreateConnectionSQL(conf database) (*sqlx.DB, error) {
	conn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", conf.User, conf.Password, conf.URL, strconv.Itoa(conf.Port), conf.Name)
	connection, err := sqlx.Connect("mysql", conn)
	if err != nil {
		return nil, err
	}
	return connection, nil
}

func CreateNewConnectionSMTP(conf awsSMTP) *gomail.Dialer {
	conn := gomail.NewDialer(conf.SMTPHost, conf.SMTPPort, conf.SMTPUser, conf.SMTPPassword)
	return conn
}

func CreateIzipayIntegration(conf izipayConf) *izipay.Client {
	iz := izipay.Client{
		BaseURL:       conf.BaseURL,
		JSBaseURL:     conf.JSBaseURL,
		Username:      conf.Username,
		Password:      conf.Password,
		PublicKey:     conf.PublicKey,
		HMACSHA256Key: conf.HMACSHA256Key,
		Timeout:       conf.Timeout,
	}

	return &iz
}

func CreateNewSessionS3(conf awsS3) (*session.Session, error) {
	s, err := session.NewSession(&aws.Config{Region: aws.String(conf.S3Region)})
	return s, err
}

var logger *log.Entry

func SetLogger(newLogger *log.Entry) {
	logger = newLogger
}

func GetLogger() *log.Entry {
	return logger
}

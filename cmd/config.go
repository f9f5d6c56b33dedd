package cmd

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	KafkaHost              string
	KafkaParcelStatusTopic string
	KafkaShipmentTopic     string
	RedisAddr              string
	RedisPassword          string
	RouteTablePath         string
}

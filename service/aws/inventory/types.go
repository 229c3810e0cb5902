package awsinventory

import (
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/rds"
)

type service struct {
	ec2Client *ec2.Client
	rdsClient *rds.Client
}

package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	yaml "gopkg.in/yaml.v2"

	"github.com/trackbot-team/trackbot/go-odometry/pkg/encoder"
	"github.com/trackbot-team/trackbot/go-odometry/pkg/ina219"
	"github.com/trackbot-team/trackbot/go-odometry/pkg/odometry"
	"github.com/trackbot-team/trackbot/go-odometry/pkg/ramp"
	"github.com/trackbot-team/trackbot/go-odometry/pkg/screen"
	"github.com/trackbot-team/trackbot/go-odometry/pkg/serialstream"
	"github.com/trackbot-team/trackbot/go-odometry/pkg/sound"
	"github.com/trackbot-team/trackbot/go-odometry/pkg/statusled"
)

type Config struct {
	SerialDevice string `yaml:"serial_device"`
	BaudRate     int    `yaml:"baud_rate"`
	TickMillis   int    `yaml:"tick_millis"`

	Geometry odometry.Geometry `yaml:"geometry"`
	Ramp     ramp.Config       `yaml:"ramp"`

	StatusLEDPin string `yaml:"status_led_pin"`
	SoundsDir    string `yaml:"sounds_dir"`
}

func defaultConfig() Config {
	return Config{
		SerialDevice: "/dev/ttyAMA0",
		BaudRate:     115200,
		TickMillis:   50,
		Geometry: odometry.Geometry{
			WheelRadiusM: 0.035,
			AxleLengthM:  0.170,
			TicksPerRev:  40,
		},
		Ramp:         ramp.DefaultConfig(),
		StatusLEDPin: "GPIO17",
		SoundsDir:    "/sounds",
	}
}

func loadConfig() Config {
	config := defaultConfig()
	path := os.Getenv("ODOMETRY_CONFIG")
	if path == "" {
		path = "/cfg/odometry.yaml"
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("No config file at %s, using defaults.\n", path)
		return config
	}
	if err := yaml.Unmarshal(raw, &config); err != nil {
		fmt.Printf("Failed to parse %s: %v; using defaults.\n", path, err)
		return defaultConfig()
	}
	fmt.Println("Loaded config from", path)
	return config
}

// How long without a decoded sample before we call the stream lost.
const streamLostAfter = 2 * time.Second

func main() {
	fmt.Print("---- Trackbot odometry ----\n\n")
	fmt.Println("GOMAXPROCS", runtime.GOMAXPROCS(0))

	// Our global context, we cancel it to trigger shutdown.
	ctx, cancel := context.WithCancel(context.Background())

	signals := make(chan os.Signal, 2)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		s := <-signals
		fmt.Println("Signal: ", s)
		cancel()
		time.Sleep(2 * time.Second)
		os.Exit(0)
	}()

	config := loadConfig()

	integrator, err := odometry.NewIntegrator(config.Geometry)
	if err != nil {
		// The one fatal error: we must not integrate with broken
		// geometry.
		fmt.Println("Refusing to start:", err)
		cancel()
		return
	}

	var tracker encoder.Tracker

	stream := serialstream.New(config.SerialDevice, config.BaudRate)
	lines := make(chan string)
	go stream.Loop(ctx, lines)
	defer stream.SendStop()

	go screen.LoopUpdatingScreen(ctx)
	go loopReadingBatteries(ctx)

	led, err := statusled.Open(config.StatusLEDPin)
	if err != nil {
		fmt.Println("No status LED:", err)
	} else {
		defer led.Off()
	}

	alerts := sound.InitAlerts()
	alerts <- config.SoundsDir + "/ready.wav"

	var (
		poseX, poseY float64
		headingRad   float64
		lastSample   time.Time
		streamOK     bool
	)

	ticker := time.NewTicker(time.Duration(config.TickMillis) * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			fmt.Println("Context done, shutting down")
			return
		case line, ok := <-lines:
			if !ok {
				fmt.Println("Encoder line channel closed!")
				cancel()
				return
			}
			sample, err := encoder.Decode(line)
			if err != nil {
				// Markerless records are just line noise; a
				// marker with a bad number is worth reporting.
				if err != encoder.ErrNoEncoderFields {
					fmt.Println("Rejected encoder record:", err)
				}
				continue
			}
			tracker.Observe(sample)
			lastSample = time.Now()
		case <-ticker.C:
			dl, dr := tracker.Drain()
			if pd, moved := integrator.Integrate(dl, dr); moved {
				poseX += pd.ForwardM * math.Cos(headingRad)
				poseY += pd.ForwardM * math.Sin(headingRad)
				headingRad += pd.YawRad
				wl, wr := integrator.WheelTurnsDegrees(dl, dr)
				fmt.Printf("ODO: dl=%d dr=%d fwd=%.3fm yaw=%.2fdeg wheels: %.1f %.1f\n",
					dl, dr, pd.ForwardM, pd.YawRad*180/math.Pi, wl, wr)
			}

			healthy := time.Since(lastSample) < streamLostAfter
			if streamOK && !healthy {
				fmt.Println("Encoder stream lost")
				alerts <- config.SoundsDir + "/lost.wav"
			}
			streamOK = healthy
			if led != nil {
				led.Set(healthy)
			}

			screen.Lock.Lock()
			screen.PoseXM = poseX
			screen.PoseYM = poseY
			screen.HeadingDeg = odometry.WrapDegrees(headingRad * 180 / math.Pi)
			screen.StreamOK = healthy
			screen.Lock.Unlock()
		}
	}
}

// loopReadingBatteries polls the two INA219 rails and publishes the bus
// voltages for the screen's charge bars.
func loopReadingBatteries(ctx context.Context) {
	var sensors []ina219.Interface
	for _, addr := range []int{ina219.Addr1, ina219.Addr2} {
		s, err := ina219.NewI2C("/dev/i2c-1", addr)
		if err != nil {
			fmt.Printf("Failed to open INA219 at 0x%x: %v\n", addr, err)
			sensors = append(sensors, nil)
			continue
		}
		if err := s.Configure(0.1, 3.2); err != nil {
			fmt.Printf("Failed to configure INA219 at 0x%x: %v\n", addr, err)
			sensors = append(sensors, nil)
			continue
		}
		sensors = append(sensors, s)
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for ctx.Err() == nil {
		<-ticker.C
		for i, s := range sensors {
			if s == nil {
				continue
			}
			v, err := s.ReadBusVoltage()
			if err != nil {
				continue
			}
			screen.Lock.Lock()
			screen.BusVoltages[i] = v
			screen.Lock.Unlock()
		}
	}
}
